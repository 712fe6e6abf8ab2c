package subtitle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedDialogue is returned when an ASS event line has too few fields.
var ErrMalformedDialogue = errors.New("subtitle: malformed ASS dialogue")

// Ass is the read view of an ASS/SSA rectangle.
type Ass struct {
	handle
}

func wrapAss(ptr *AVSubtitleRect) Ass { return Ass{handle{ptr}} }

func (Ass) Type() Type { return TypeAss }

// Bytes returns the raw event line without the NUL terminator, nil if
// unset. Same validity rules as Text.Bytes.
func (a Ass) Bytes() []byte { return cStringBytes(a.ptr.Ass) }

// Get returns a copy of the event line, or a *DecodeError if it is not
// valid UTF-8.
func (a Ass) Get() (string, error) { return decodeCString("ass", a.ptr.Ass) }

// GetCharset decodes the event line from a legacy character set.
func (a Ass) GetCharset(name string) (string, error) {
	return decodeCharset("ass", a.Bytes(), name)
}

// Dialogue parses the event line.
func (a Ass) Dialogue() (Dialogue, error) {
	line, err := a.Get()
	if err != nil {
		return Dialogue{}, err
	}
	return ParseDialogue(line)
}

// PlainText returns the dialogue text with override tags removed.
func (a Ass) PlainText() (string, error) {
	d, err := a.Dialogue()
	if err != nil {
		return "", err
	}
	return d.PlainText(), nil
}

// Dialogue is one ASS event as emitted by libavcodec decoders:
//
//	ReadOrder,Layer,Style,Name,MarginL,MarginR,MarginV,Effect,Text
//
// Lines in the older "Dialogue: Layer,Start,End,..." form are accepted too,
// including SSA v4's "Dialogue: Marked=0,..."; their timing fields are
// skipped.
type Dialogue struct {
	ReadOrder int
	Layer     int
	Style     string
	Name      string
	MarginL   int
	MarginR   int
	MarginV   int
	Effect    string
	Text      string // Raw text including override tags
}

// ParseDialogue parses an ASS event line.
func ParseDialogue(line string) (Dialogue, error) {
	line = strings.TrimRight(line, "\r\n")

	legacy := false
	if rest, ok := strings.CutPrefix(line, "Dialogue:"); ok {
		line = strings.TrimLeft(rest, " ")
		legacy = true
	}

	n := 9
	if legacy {
		n = 10
	}
	f := strings.SplitN(line, ",", n)
	if len(f) != n {
		return Dialogue{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformedDialogue, len(f), n)
	}

	var d Dialogue
	var err error
	if legacy {
		// Layer,Start,End,Style,Name,MarginL,MarginR,MarginV,Effect,Text.
		// SSA v4 has Marked=N in place of Layer; such lines are on layer 0.
		if !strings.HasPrefix(strings.TrimSpace(f[0]), "Marked=") {
			if d.Layer, err = atoiField("Layer", f[0]); err != nil {
				return Dialogue{}, err
			}
		}
		f = f[3:]
	} else {
		if d.ReadOrder, err = atoiField("ReadOrder", f[0]); err != nil {
			return Dialogue{}, err
		}
		if d.Layer, err = atoiField("Layer", f[1]); err != nil {
			return Dialogue{}, err
		}
		f = f[2:]
	}

	d.Style = f[0]
	d.Name = f[1]
	if d.MarginL, err = atoiField("MarginL", f[2]); err != nil {
		return Dialogue{}, err
	}
	if d.MarginR, err = atoiField("MarginR", f[3]); err != nil {
		return Dialogue{}, err
	}
	if d.MarginV, err = atoiField("MarginV", f[4]); err != nil {
		return Dialogue{}, err
	}
	d.Effect = f[5]
	d.Text = f[6]
	return d, nil
}

func atoiField(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedDialogue, name, s)
	}
	return v, nil
}

// PlainText strips {...} override blocks and expands \N, \n and \h.
func (d Dialogue) PlainText() string {
	var sb strings.Builder
	sb.Grow(len(d.Text))
	s := d.Text
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				sb.WriteString(s[i:])
				return sb.String()
			}
			i += end
		case c == '\\' && i+1 < len(s):
			switch s[i+1] {
			case 'N', 'n':
				sb.WriteByte('\n')
				i++
			case 'h':
				sb.WriteByte(' ')
				i++
			default:
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// String formats d in the ReadOrder form ParseDialogue accepts.
func (d Dialogue) String() string {
	return fmt.Sprintf("%d,%d,%s,%s,%d,%d,%d,%s,%s",
		d.ReadOrder, d.Layer, d.Style, d.Name, d.MarginL, d.MarginR, d.MarginV, d.Effect, d.Text)
}
