package subtitle

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"
	"github.com/yutopp/go-amf0"
	"github.com/yutopp/go-rtmp"
	rtmpmsg "github.com/yutopp/go-rtmp/message"
)

// Name of the FLV script data message carrying timed text.
const OnTextDataName = "onTextData"

// Chunk stream commonly used for data messages.
const DefaultDataChunkStreamID = 8

// NewTextDataMessage builds an onTextData AMF0 data message for a Text or
// Ass cue: {text: <plain text>, trackid: <trackID>}.
func NewTextDataMessage(cue *Cue, trackID int) (*rtmpmsg.DataMessage, error) {
	if cue.Type == TypeBitmap {
		return nil, &WrongVariantError{Want: TypeText, Got: cue.Type}
	}
	body := new(bytes.Buffer)
	obj := map[string]interface{}{
		"text":    cue.PlainText(),
		"trackid": float64(trackID),
	}
	if err := amf0.NewEncoder(body).Encode(obj); err != nil {
		return nil, fmt.Errorf("subtitle: encoding %s: %w", OnTextDataName, err)
	}
	return &rtmpmsg.DataMessage{
		Name:     OnTextDataName,
		Encoding: rtmpmsg.EncodingTypeAMF0,
		Body:     body,
	}, nil
}

// DataMessageWriter is the write side of an RTMP message stream; go-rtmp's
// *rtmp.Stream has this method.
type DataMessageWriter interface {
	Write(chunkStreamID int, timestamp uint32, msg rtmpmsg.Message) error
}

// RTMPTextConfig configures an RTMPTextWriter.
type RTMPTextConfig struct {
	ChunkStreamID int
	TrackID       int
	LoggerFactory logging.LoggerFactory
}

// DefaultRTMPTextConfig returns a default RTMP text configuration.
func DefaultRTMPTextConfig() RTMPTextConfig {
	return RTMPTextConfig{
		ChunkStreamID: DefaultDataChunkStreamID,
		TrackID:       0,
	}
}

// RTMPTextWriter publishes cues as onTextData messages.
type RTMPTextWriter struct {
	w      DataMessageWriter
	config RTMPTextConfig
	log    logging.LeveledLogger
	mu     sync.Mutex
}

// NewRTMPTextWriter creates a writer on top of an RTMP stream.
func NewRTMPTextWriter(w DataMessageWriter, config RTMPTextConfig) *RTMPTextWriter {
	if config.ChunkStreamID <= 0 {
		config.ChunkStreamID = DefaultDataChunkStreamID
	}
	if config.LoggerFactory == nil {
		config.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &RTMPTextWriter{
		w:      w,
		config: config,
		log:    config.LoggerFactory.NewLogger("subtitle-rtmp"),
	}
}

// WriteCue sends a Text or Ass cue at timestamp (milliseconds). None cues
// are skipped; bitmap cues are rejected with a *WrongVariantError.
func (w *RTMPTextWriter) WriteCue(cue *Cue, timestamp uint32) error {
	if cue.Type == TypeNone {
		return nil
	}
	msg, err := NewTextDataMessage(cue, w.config.TrackID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.w.Write(w.config.ChunkStreamID, timestamp, msg); err != nil {
		return fmt.Errorf("subtitle: writing %s: %w", OnTextDataName, err)
	}
	w.log.Tracef("%s at %d ms", OnTextDataName, timestamp)
	return nil
}

// ParseTextData decodes the body of an onTextData message into a Text cue
// and its track id.
func ParseTextData(msg *rtmpmsg.DataMessage) (*Cue, int, error) {
	if msg.Name != OnTextDataName {
		return nil, 0, fmt.Errorf("subtitle: unexpected data message %q", msg.Name)
	}
	if msg.Body == nil {
		return nil, 0, errors.New("subtitle: empty onTextData body")
	}
	var obj map[string]interface{}
	if err := amf0.NewDecoder(msg.Body).Decode(&obj); err != nil {
		return nil, 0, fmt.Errorf("subtitle: decoding %s: %w", OnTextDataName, err)
	}
	text, _ := obj["text"].(string)
	trackID, _ := obj["trackid"].(float64)
	return &Cue{Type: TypeText, Text: text}, int(trackID), nil
}

// RTMPTextHandler is a go-rtmp connection handler that turns incoming
// onTextData messages into cues. Other messages get the default handling.
type RTMPTextHandler struct {
	rtmp.DefaultHandler

	// OnCue is called for every onTextData message.
	OnCue func(cue *Cue, trackID int, timestamp uint32)
}

// OnUnknownDataMessage receives data messages other than @setDataFrame.
func (h *RTMPTextHandler) OnUnknownDataMessage(timestamp uint32, data *rtmpmsg.DataMessage) error {
	if data.Name != OnTextDataName {
		return nil
	}
	cue, trackID, err := ParseTextData(data)
	if err != nil {
		return err
	}
	if h.OnCue != nil {
		h.OnCue(cue, trackID, timestamp)
	}
	return nil
}
