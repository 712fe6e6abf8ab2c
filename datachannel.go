package subtitle

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pion/logging"
	"github.com/pion/webrtc/v4"
)

// DataChannelConfig configures a DataChannelSink.
type DataChannelConfig struct {
	Label         string // Data channel label
	Protocol      string // Subprotocol announced to the peer
	LoggerFactory logging.LoggerFactory
}

// DefaultDataChannelConfig returns a default data channel configuration.
func DefaultDataChannelConfig() DataChannelConfig {
	return DataChannelConfig{
		Label:    "subtitles",
		Protocol: "subtitle-cue+json",
	}
}

// CueEvent is the JSON message a DataChannelSink sends for each cue.
type CueEvent struct {
	PTS    int64  `json:"pts_ms"`
	Type   string `json:"type"`
	Forced bool   `json:"forced,omitempty"`
	Text   string `json:"text,omitempty"`
	Ass    string `json:"ass,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// NewCueEvent describes cue at presentation time pts. Bitmap cues carry
// their geometry only.
func NewCueEvent(cue *Cue, pts time.Duration) CueEvent {
	ev := CueEvent{
		PTS:    pts.Milliseconds(),
		Type:   cue.Type.String(),
		Forced: cue.Flags.Has(FlagForced),
	}
	switch cue.Type {
	case TypeText:
		ev.Text = cue.Text
	case TypeAss:
		ev.Text = cue.PlainText()
		ev.Ass = cue.Ass
	case TypeBitmap:
		ev.X, ev.Y = cue.X, cue.Y
		ev.Width, ev.Height = cue.Width, cue.Height
	}
	return ev
}

// textSender is the part of *webrtc.DataChannel the sink uses.
type textSender interface {
	SendText(s string) error
	Label() string
}

// DataChannelSink sends cues to a WebRTC peer over a data channel.
type DataChannelSink struct {
	dc  textSender
	log logging.LeveledLogger

	mu      sync.Mutex
	dropped uint64
}

// NewDataChannelSink creates an ordered, reliable data channel on pc and
// sends cues over it. Cues written before the channel opens are dropped.
func NewDataChannelSink(pc *webrtc.PeerConnection, config DataChannelConfig) (*DataChannelSink, error) {
	if config.Label == "" {
		config.Label = DefaultDataChannelConfig().Label
	}
	ordered := true
	opts := &webrtc.DataChannelInit{Ordered: &ordered}
	if config.Protocol != "" {
		protocol := config.Protocol
		opts.Protocol = &protocol
	}
	dc, err := pc.CreateDataChannel(config.Label, opts)
	if err != nil {
		return nil, fmt.Errorf("subtitle: creating data channel: %w", err)
	}
	return newDataChannelSink(dc, config.LoggerFactory), nil
}

// NewDataChannelSinkFromChannel sends cues over an existing data channel.
func NewDataChannelSinkFromChannel(dc *webrtc.DataChannel, factory logging.LoggerFactory) *DataChannelSink {
	return newDataChannelSink(dc, factory)
}

func newDataChannelSink(dc textSender, factory logging.LoggerFactory) *DataChannelSink {
	if factory == nil {
		factory = logging.NewDefaultLoggerFactory()
	}
	return &DataChannelSink{
		dc:  dc,
		log: factory.NewLogger("subtitle-datachannel"),
	}
}

// Label returns the data channel label.
func (s *DataChannelSink) Label() string { return s.dc.Label() }

// WriteCue sends cue as a CueEvent. A channel that is not open yet drops
// the cue and reports it in Dropped.
func (s *DataChannelSink) WriteCue(cue *Cue, pts time.Duration) error {
	data, err := json.Marshal(NewCueEvent(cue, pts))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dc, ok := s.dc.(*webrtc.DataChannel); ok && dc.ReadyState() != webrtc.DataChannelStateOpen {
		s.dropped++
		s.log.Debugf("data channel %s not open, dropping cue", dc.Label())
		return nil
	}
	if err := s.dc.SendText(string(data)); err != nil {
		return fmt.Errorf("subtitle: sending cue: %w", err)
	}
	return nil
}

// Dropped returns the number of cues dropped because the channel was not open.
func (s *DataChannelSink) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
