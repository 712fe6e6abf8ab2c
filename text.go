package subtitle

// Text is the read view of a plain text rectangle.
type Text struct {
	handle
}

func wrapText(ptr *AVSubtitleRect) Text { return Text{handle{ptr}} }

func (Text) Type() Type { return TypeText }

// Bytes returns the raw text without the NUL terminator, nil if unset.
// The slice aliases native memory: it is invalidated by Set and by the
// producer freeing the rectangle.
func (t Text) Bytes() []byte { return cStringBytes(t.ptr.Text) }

// Get returns a copy of the text. A payload that is not valid UTF-8 yields
// a *DecodeError; nothing is substituted.
func (t Text) Get() (string, error) { return decodeCString("text", t.ptr.Text) }

// GetCharset decodes the text from a legacy character set such as
// "windows-1252" or "ISO-8859-15".
func (t Text) GetCharset(name string) (string, error) {
	return decodeCharset("text", t.Bytes(), name)
}
