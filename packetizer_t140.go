package subtitle

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pion/rtp"
)

// T.140 real-time text over RTP (RFC 4103).
const (
	T140MimeType           = "text/t140"
	T140ClockRate          = 1000 // Timestamps are in milliseconds
	T140DefaultPayloadType = 111
)

// T.140 control characters.
const (
	t140LineSeparator = "\u2028" // New line
	t140BOM           = "\ufeff" // Zero width no-break space, sent as keep-alive
)

// EncodeT140 converts text to T.140: line breaks become LINE SEPARATOR.
func EncodeT140(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", t140LineSeparator)
}

// DecodeT140 reverses EncodeT140 and drops keep-alive BOMs.
func DecodeT140(text string) string {
	text = strings.ReplaceAll(text, t140BOM, "")
	return strings.ReplaceAll(text, t140LineSeparator, "\n")
}

// T140Payloader implements rtp.Payloader. It splits T.140 text into
// payloads of at most mtu bytes without cutting a UTF-8 sequence.
type T140Payloader struct{}

func (T140Payloader) Payload(mtu uint16, payload []byte) [][]byte {
	if mtu == 0 || len(payload) == 0 {
		return nil
	}
	var out [][]byte
	for len(payload) > 0 {
		end := int(mtu)
		if end >= len(payload) {
			end = len(payload)
		} else {
			for end > 0 && !utf8.RuneStart(payload[end]) {
				end--
			}
			if end == 0 {
				// mtu is smaller than one character
				return out
			}
		}
		chunk := make([]byte, end)
		copy(chunk, payload[:end])
		out = append(out, chunk)
		payload = payload[end:]
	}
	return out
}

// TextPacketizer turns Text and Ass cues into T.140 RTP packets.
type TextPacketizer struct {
	ssrc        uint32
	payloadType uint8
	mtu         int
	sequencer   rtp.Sequencer
	payloader   T140Payloader
	mu          sync.Mutex
}

// NewTextPacketizer creates a new T.140 RTP packetizer.
func NewTextPacketizer(ssrc uint32, pt uint8, mtu int) *TextPacketizer {
	if mtu <= 0 {
		mtu = DefaultMTU
	}
	return &TextPacketizer{
		ssrc:        ssrc,
		payloadType: pt,
		mtu:         mtu,
		sequencer:   rtp.NewRandomSequencer(),
	}
}

// Packetize converts the cue's plain text to RTP packets sharing timestamp
// (in T140ClockRate units). The first packet carries the marker bit, which
// RFC 4103 sets after an idle period. None cues and cues with empty text
// produce no packets; bitmap cues are rejected with a *WrongVariantError.
func (p *TextPacketizer) Packetize(cue *Cue, timestamp uint32) ([]*RTPPacket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cue.Type == TypeBitmap {
		return nil, &WrongVariantError{Want: TypeText, Got: cue.Type}
	}
	text := cue.PlainText()
	if text == "" {
		return nil, nil
	}

	// Every payload must fit the longest UTF-8 sequence, or the payloader
	// stops short of the end of the text.
	room := p.mtu - rtpHeaderSize
	if room < utf8.UTFMax || room > 0xffff {
		return nil, fmt.Errorf("subtitle: invalid RTP MTU %d", p.mtu)
	}
	payloads := p.payloader.Payload(uint16(room), []byte(EncodeT140(text)))
	if len(payloads) == 0 {
		return nil, nil
	}

	packets := make([]*RTPPacket, len(payloads))
	for i, payload := range payloads {
		packets[i] = &RTPPacket{
			Header: rtp.Header{
				Version:        2,
				Marker:         i == 0,
				PayloadType:    p.payloadType,
				SequenceNumber: p.sequencer.NextSequenceNumber(),
				Timestamp:      timestamp,
				SSRC:           p.ssrc,
			},
			Payload: payload,
		}
	}
	return packets, nil
}

// PacketizeToBytes converts a cue to raw RTP packet bytes.
func (p *TextPacketizer) PacketizeToBytes(cue *Cue, timestamp uint32) ([][]byte, error) {
	packets, err := p.Packetize(cue, timestamp)
	if err != nil {
		return nil, err
	}
	result := make([][]byte, len(packets))
	for i, pkt := range packets {
		if result[i], err = pkt.Marshal(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (p *TextPacketizer) SetSSRC(ssrc uint32)     { p.mu.Lock(); p.ssrc = ssrc; p.mu.Unlock() }
func (p *TextPacketizer) SSRC() uint32            { p.mu.Lock(); defer p.mu.Unlock(); return p.ssrc }
func (p *TextPacketizer) PayloadType() uint8      { p.mu.Lock(); defer p.mu.Unlock(); return p.payloadType }
func (p *TextPacketizer) SetPayloadType(pt uint8) { p.mu.Lock(); p.payloadType = pt; p.mu.Unlock() }
func (p *TextPacketizer) MTU() int                { p.mu.Lock(); defer p.mu.Unlock(); return p.mtu }
func (p *TextPacketizer) SetMTU(mtu int)          { p.mu.Lock(); p.mtu = mtu; p.mu.Unlock() }

// T140Depacketizer extracts T.140 text from RTP packets. It implements
// rtp.Depacketizer; every packet is a complete unit.
type T140Depacketizer struct {
	lastSeq uint16
	started bool
	mu      sync.Mutex
}

// NewT140Depacketizer creates a new T.140 RTP depacketizer.
func NewT140Depacketizer() *T140Depacketizer {
	return &T140Depacketizer{}
}

// Unmarshal returns a copy of the RTP payload.
func (d *T140Depacketizer) Unmarshal(payload []byte) ([]byte, error) {
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (d *T140Depacketizer) IsPartitionHead(payload []byte) bool { return true }

func (d *T140Depacketizer) IsPartitionTail(marker bool, payload []byte) bool { return true }

// Depacketize returns the text carried by packet with line separators
// converted back to newlines. Duplicate and late packets return "".
func (d *T140Depacketizer) Depacketize(packet *RTPPacket) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	seq := packet.Header.SequenceNumber
	if d.started && IsRTPSequenceOlder(seq, d.lastSeq) {
		return "", nil
	}
	d.started = true
	d.lastSeq = seq

	if !utf8.Valid(packet.Payload) {
		return "", &DecodeError{Field: "t140", Offset: invalidUTF8Offset(packet.Payload), Err: ErrInvalidUTF8}
	}
	return DecodeT140(string(packet.Payload)), nil
}

// DepacketizeBytes processes raw RTP packet bytes.
func (d *T140Depacketizer) DepacketizeBytes(data []byte) (string, error) {
	var pkt rtp.Packet
	if err := pkt.Unmarshal(data); err != nil {
		return "", err
	}
	return d.Depacketize(&pkt)
}

// Reset forgets the last sequence number.
func (d *T140Depacketizer) Reset() {
	d.mu.Lock()
	d.started = false
	d.mu.Unlock()
}

var _ rtp.Payloader = T140Payloader{}
var _ rtp.Depacketizer = (*T140Depacketizer)(nil)
