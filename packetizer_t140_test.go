package subtitle

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pion/rtp"
)

func TestEncodeDecodeT140(t *testing.T) {
	tests := []struct {
		in      string
		encoded string
	}{
		{"hello", "hello"},
		{"one\ntwo", "one\u2028two"},
		{"one\r\ntwo", "one\u2028two"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EncodeT140(tt.in); got != tt.encoded {
			t.Errorf("EncodeT140(%q) = %q, want %q", tt.in, got, tt.encoded)
		}
	}
	if got := DecodeT140("\ufeffa\u2028b\ufeff"); got != "a\nb" {
		t.Errorf("DecodeT140() = %q, want %q", got, "a\nb")
	}
}

func TestT140Payloader(t *testing.T) {
	var p T140Payloader
	text := []byte("héllo wörld 字幕")

	for _, mtu := range []uint16{1, 3, 4, 7, 1000} {
		payloads := p.Payload(mtu, text)
		var joined []byte
		for _, pl := range payloads {
			if len(pl) > int(mtu) {
				t.Errorf("mtu %d: payload of %d bytes", mtu, len(pl))
			}
			if !utf8.Valid(pl) {
				t.Errorf("mtu %d: payload %q splits a character", mtu, pl)
			}
			joined = append(joined, pl...)
		}
		if mtu >= 3 && string(joined) != string(text) {
			t.Errorf("mtu %d: reassembled %q", mtu, joined)
		}
	}

	if p.Payload(0, text) != nil || p.Payload(10, nil) != nil {
		t.Error("empty input should produce no payloads")
	}
}

func TestTextPacketizer(t *testing.T) {
	pkt := NewTextPacketizer(12345, T140DefaultPayloadType, 0)
	if pkt.MTU() != DefaultMTU {
		t.Errorf("MTU() = %d, want %d", pkt.MTU(), DefaultMTU)
	}

	cue := &Cue{Type: TypeText, Text: "Hello\nworld"}
	packets, err := pkt.Packetize(cue, 5000)
	if err != nil {
		t.Fatalf("Packetize failed: %v", err)
	}
	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(packets))
	}

	h := packets[0].Header
	if h.SSRC != 12345 {
		t.Errorf("SSRC = %d, want 12345", h.SSRC)
	}
	if h.PayloadType != T140DefaultPayloadType {
		t.Errorf("PayloadType = %d, want %d", h.PayloadType, T140DefaultPayloadType)
	}
	if h.Timestamp != 5000 {
		t.Errorf("Timestamp = %d, want 5000", h.Timestamp)
	}
	if !h.Marker {
		t.Error("first packet should have marker bit set")
	}
	if string(packets[0].Payload) != "Hello\u2028world" {
		t.Errorf("Payload = %q", packets[0].Payload)
	}
}

func TestTextPacketizerSplitsLongText(t *testing.T) {
	pkt := NewTextPacketizer(1, 100, rtpHeaderSize+16)
	text := strings.Repeat("ünïcödé ", 10)

	packets, err := pkt.Packetize(&Cue{Type: TypeText, Text: text}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(packets) < 2 {
		t.Fatalf("got %d packets, want several", len(packets))
	}

	var sb strings.Builder
	for i, p := range packets {
		if p.Header.Marker != (i == 0) {
			t.Errorf("packet %d: marker = %v", i, p.Header.Marker)
		}
		if i > 0 && p.Header.SequenceNumber != packets[i-1].Header.SequenceNumber+1 {
			t.Errorf("packet %d: sequence %d does not follow %d", i, p.Header.SequenceNumber, packets[i-1].Header.SequenceNumber)
		}
		if len(p.Payload) > 16 {
			t.Errorf("packet %d: %d byte payload exceeds MTU", i, len(p.Payload))
		}
		sb.Write(p.Payload)
	}
	if sb.String() != text {
		t.Errorf("reassembled %q, want %q", sb.String(), text)
	}
}

func TestTextPacketizerCueTypes(t *testing.T) {
	pkt := NewTextPacketizer(1, 100, DefaultMTU)

	packets, err := pkt.Packetize(&Cue{Type: TypeAss, Ass: "0,0,Default,,0,0,0,,{\\b1}Bold{\\b0}\\Nnext"}, 0)
	if err != nil || len(packets) != 1 {
		t.Fatalf("Packetize(ass) = %d packets, %v", len(packets), err)
	}
	if string(packets[0].Payload) != "Bold\u2028next" {
		t.Errorf("ass payload = %q", packets[0].Payload)
	}

	if packets, err := pkt.Packetize(&Cue{Type: TypeNone}, 0); err != nil || packets != nil {
		t.Errorf("Packetize(none) = %v, %v", packets, err)
	}
	if packets, err := pkt.Packetize(&Cue{Type: TypeText}, 0); err != nil || packets != nil {
		t.Errorf("Packetize(empty) = %v, %v", packets, err)
	}
	if _, err := pkt.Packetize(&Cue{Type: TypeBitmap}, 0); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("Packetize(bitmap) error = %v, want ErrWrongVariant", err)
	}

	for _, mtu := range []int{rtpHeaderSize, rtpHeaderSize + 1, rtpHeaderSize + utf8.UTFMax - 1, rtpHeaderSize + 0x10000} {
		pkt.SetMTU(mtu)
		if packets, err := pkt.Packetize(&Cue{Type: TypeText, Text: "x😀"}, 0); err == nil {
			t.Errorf("Packetize() with MTU %d = %d packets, want error", mtu, len(packets))
		}
	}

	// The smallest accepted MTU carries any character without losing text.
	pkt.SetMTU(rtpHeaderSize + utf8.UTFMax)
	packets, err = pkt.Packetize(&Cue{Type: TypeText, Text: "a😀字b"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for _, p := range packets {
		sb.Write(p.Payload)
	}
	if sb.String() != "a😀字b" {
		t.Errorf("reassembled %q, want %q", sb.String(), "a😀字b")
	}
}

func TestTextPacketizerSetters(t *testing.T) {
	pkt := NewTextPacketizer(1, 100, DefaultMTU)
	pkt.SetSSRC(99)
	pkt.SetPayloadType(98)
	pkt.SetMTU(500)
	if pkt.SSRC() != 99 || pkt.PayloadType() != 98 || pkt.MTU() != 500 {
		t.Errorf("got ssrc=%d pt=%d mtu=%d", pkt.SSRC(), pkt.PayloadType(), pkt.MTU())
	}

	packets, _ := pkt.Packetize(&Cue{Type: TypeText, Text: "x"}, 0)
	if packets[0].Header.SSRC != 99 || packets[0].Header.PayloadType != 98 {
		t.Errorf("header = %+v", packets[0].Header)
	}
}

func TestT140RoundTrip(t *testing.T) {
	pkt := NewTextPacketizer(42, T140DefaultPayloadType, rtpHeaderSize+8)
	depkt := NewT140Depacketizer()

	want := "Zeile eins\nZeile zwei – ß"
	raw, err := pkt.PacketizeToBytes(&Cue{Type: TypeText, Text: want}, 1234)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	for _, b := range raw {
		s, err := depkt.DepacketizeBytes(b)
		if err != nil {
			t.Fatalf("DepacketizeBytes failed: %v", err)
		}
		sb.WriteString(s)
	}
	if sb.String() != want {
		t.Errorf("round trip = %q, want %q", sb.String(), want)
	}
}

func TestT140DepacketizerDropsOldPackets(t *testing.T) {
	d := NewT140Depacketizer()
	mk := func(seq uint16, text string) *rtp.Packet {
		return &rtp.Packet{Header: rtp.Header{SequenceNumber: seq}, Payload: []byte(text)}
	}

	if s, _ := d.Depacketize(mk(65535, "a")); s != "a" {
		t.Errorf("first packet = %q", s)
	}
	if s, _ := d.Depacketize(mk(0, "b")); s != "b" {
		t.Errorf("wrapped packet = %q", s)
	}
	if s, _ := d.Depacketize(mk(0, "b")); s != "" {
		t.Errorf("duplicate packet = %q, want empty", s)
	}
	if s, _ := d.Depacketize(mk(65534, "z")); s != "" {
		t.Errorf("late packet = %q, want empty", s)
	}

	d.Reset()
	if s, _ := d.Depacketize(mk(10, "c")); s != "c" {
		t.Errorf("packet after Reset = %q", s)
	}
}

func TestT140DepacketizerInvalidUTF8(t *testing.T) {
	d := NewT140Depacketizer()
	_, err := d.Depacketize(&rtp.Packet{Payload: []byte("ok\xff")})
	var de *DecodeError
	if !errors.As(err, &de) || de.Offset != 2 {
		t.Errorf("Depacketize() error = %v, want DecodeError at 2", err)
	}
}

func TestIsRTPSequenceOlder(t *testing.T) {
	tests := []struct {
		a, b uint16
		want bool
	}{
		{1, 2, true},
		{2, 2, true},
		{3, 2, false},
		{65535, 0, true},
		{0, 65535, false},
	}
	for _, tt := range tests {
		if got := IsRTPSequenceOlder(tt.a, tt.b); got != tt.want {
			t.Errorf("IsRTPSequenceOlder(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

type recordingRTPWriter struct {
	packets []*RTPPacket
	err     error
}

func (w *recordingRTPWriter) WriteRTP(p *RTPPacket) error {
	if w.err != nil {
		return w.err
	}
	w.packets = append(w.packets, p)
	return nil
}

func TestWriteCueRTP(t *testing.T) {
	w := &recordingRTPWriter{}
	pkt := NewTextPacketizer(7, T140DefaultPayloadType, rtpHeaderSize+4)

	if err := WriteCueRTP(w, pkt, &Cue{Type: TypeText, Text: "abcdefghij"}, 10); err != nil {
		t.Fatal(err)
	}
	if len(w.packets) != 3 {
		t.Errorf("wrote %d packets, want 3", len(w.packets))
	}

	w.err = errors.New("closed")
	if err := WriteCueRTP(w, pkt, &Cue{Type: TypeText, Text: "x"}, 20); err != w.err {
		t.Errorf("WriteCueRTP() error = %v, want writer error", err)
	}
}
