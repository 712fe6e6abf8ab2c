package subtitle

import (
	"github.com/pion/rtp"
)

// Re-export pion/rtp types for convenience
type (
	// RTPPacket is an alias to pion's rtp.Packet
	RTPPacket = rtp.Packet

	// RTPHeader is an alias to pion's rtp.Header
	RTPHeader = rtp.Header
)

// RTPWriter is an interface for writing RTP packets.
type RTPWriter interface {
	// WriteRTP writes an RTP packet.
	WriteRTP(packet *RTPPacket) error
}

// Default MTU for RTP packets (UDP safe)
const DefaultMTU = 1200

// rtpHeaderSize is the fixed header without CSRCs or extensions.
const rtpHeaderSize = 12

// IsRTPSequenceOlder returns true if seq1 is older than or equal to seq2,
// handling 16-bit wraparound.
func IsRTPSequenceOlder(seq1, seq2 uint16) bool {
	return int16(seq2-seq1) >= 0
}

// WriteCueRTP packetizes cue and writes every packet to w.
func WriteCueRTP(w RTPWriter, p *TextPacketizer, cue *Cue, timestamp uint32) error {
	packets, err := p.Packetize(cue, timestamp)
	if err != nil {
		return err
	}
	for _, pkt := range packets {
		if err := w.WriteRTP(pkt); err != nil {
			return err
		}
	}
	return nil
}
