package subtitle

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
)

type fakeTextSender struct {
	label string
	sent  []string
	err   error
}

func (f *fakeTextSender) SendText(s string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, s)
	return nil
}

func (f *fakeTextSender) Label() string { return f.label }

func TestNewCueEvent(t *testing.T) {
	tests := []struct {
		name string
		cue  *Cue
		want CueEvent
	}{
		{
			name: "text",
			cue:  &Cue{Type: TypeText, Text: "hi", Flags: FlagForced},
			want: CueEvent{PTS: 1500, Type: "Text", Forced: true, Text: "hi"},
		},
		{
			name: "ass",
			cue:  &Cue{Type: TypeAss, Ass: "0,0,Default,,0,0,0,,{\\b1}x{\\b0}"},
			want: CueEvent{PTS: 1500, Type: "Ass", Text: "x", Ass: "0,0,Default,,0,0,0,,{\\b1}x{\\b0}"},
		},
		{
			name: "bitmap",
			cue:  &Cue{Type: TypeBitmap, X: 1, Y: 2, Width: 3, Height: 4, Pixels: []byte{0}},
			want: CueEvent{PTS: 1500, Type: "Bitmap", X: 1, Y: 2, Width: 3, Height: 4},
		},
		{
			name: "none",
			cue:  &Cue{Type: TypeNone},
			want: CueEvent{PTS: 1500, Type: "None"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCueEvent(tt.cue, 1500*time.Millisecond); got != tt.want {
				t.Errorf("NewCueEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDataChannelSink_WriteCue(t *testing.T) {
	sender := &fakeTextSender{label: "subs"}
	sink := newDataChannelSink(sender, nil)

	if sink.Label() != "subs" {
		t.Errorf("Label() = %q", sink.Label())
	}
	if err := sink.WriteCue(&Cue{Type: TypeText, Text: "hello"}, 2*time.Second); err != nil {
		t.Fatal(err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	var ev CueEvent
	if err := json.Unmarshal([]byte(sender.sent[0]), &ev); err != nil {
		t.Fatalf("message is not JSON: %v", err)
	}
	if ev.PTS != 2000 || ev.Type != "Text" || ev.Text != "hello" {
		t.Errorf("event = %+v", ev)
	}

	sender.err = errors.New("closed")
	if err := sink.WriteCue(&Cue{Type: TypeText, Text: "x"}, 0); !errors.Is(err, sender.err) {
		t.Errorf("WriteCue() error = %v, want wrapped send error", err)
	}
	if sink.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", sink.Dropped())
	}
}

func TestDataChannelSink_NotOpen(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("NewPeerConnection failed: %v", err)
	}
	defer pc.Close()

	sink, err := NewDataChannelSink(pc, DataChannelConfig{Protocol: "subtitle-cue+json"})
	if err != nil {
		t.Fatalf("NewDataChannelSink failed: %v", err)
	}
	if sink.Label() != DefaultDataChannelConfig().Label {
		t.Errorf("Label() = %q, want default", sink.Label())
	}

	// Without a remote peer the channel never opens.
	for i := 0; i < 3; i++ {
		if err := sink.WriteCue(&Cue{Type: TypeText, Text: "x"}, 0); err != nil {
			t.Fatalf("WriteCue() error = %v", err)
		}
	}
	if sink.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", sink.Dropped())
	}
}
