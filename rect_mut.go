package subtitle

// RectMut is the exclusive view of one subtitle rectangle. Like Rect it is a
// closed set, *NoneMut, *BitmapMut, *TextMut or *AssMut, fixed by the type
// tag at creation. Each mutable variant embeds its read view, so all read
// accessors are available on it unchanged.
//
// While a RectMut is in use no other view of the same rectangle may exist.
// Subtitle.Edit enforces this for rectangles reached through a Subtitle.
type RectMut interface {
	Rect

	// AsMutPtr returns the borrowed rectangle for writing.
	AsMutPtr() *AVSubtitleRect

	rectMut()
}

// WrapMut classifies ptr by its type tag and returns the matching mutable
// view. alloc is used by the Text and Ass setters; it may be nil when the
// caller never replaces strings. The preconditions of Wrap apply.
func WrapMut(ptr *AVSubtitleRect, alloc Allocator) RectMut {
	switch typeFromRaw(ptr.Type) {
	case TypeBitmap:
		return &BitmapMut{Bitmap: wrapBitmap(ptr)}
	case TypeText:
		return &TextMut{Text: wrapText(ptr), alloc: alloc}
	case TypeAss:
		return &AssMut{Ass: wrapAss(ptr), alloc: alloc}
	default:
		return &NoneMut{None: None{handle{ptr}}}
	}
}

// NoneMut is the mutable view of a rectangle without payload.
type NoneMut struct {
	None
}

func (m *NoneMut) AsMutPtr() *AVSubtitleRect { return m.ptr }

func (*NoneMut) rectMut() {}

// BitmapMut adds geometry setters to Bitmap. Values are stored in the
// rectangle's 32-bit fields with an explicit truncating conversion, the
// same width the producer uses; nothing is checked against the frame.
type BitmapMut struct {
	Bitmap
}

func (m *BitmapMut) AsMutPtr() *AVSubtitleRect { return m.ptr }

func (*BitmapMut) rectMut() {}

func (m *BitmapMut) SetX(v int) { m.AsMutPtr().X = int32(v) }

func (m *BitmapMut) SetY(v int) { m.AsMutPtr().Y = int32(v) }

func (m *BitmapMut) SetWidth(v uint32) { m.AsMutPtr().W = int32(v) }

// SetHeight stores the height. Pixels sizes its slice from it, so it must
// not exceed the rows the pixel buffer holds.
func (m *BitmapMut) SetHeight(v uint32) { m.AsMutPtr().H = int32(v) }

// SetColors sets the palette entry count. The palette itself is not resized.
func (m *BitmapMut) SetColors(v int) { m.AsMutPtr().NbColors = int32(v) }

// TextMut adds replacement of the text payload to Text.
type TextMut struct {
	Text
	alloc Allocator
}

func (m *TextMut) AsMutPtr() *AVSubtitleRect { return m.ptr }

func (*TextMut) rectMut() {}

// Set replaces the text with a copy of value allocated by the view's
// Allocator and frees the previous buffer. A value containing a NUL byte
// is rejected with a *NulError and the stored text is kept.
func (m *TextMut) Set(value string) error {
	return replaceString(m.alloc, &m.AsMutPtr().Text, "text", value)
}

// AssMut adds replacement of the ASS event line to Ass.
type AssMut struct {
	Ass
	alloc Allocator
}

func (m *AssMut) AsMutPtr() *AVSubtitleRect { return m.ptr }

func (*AssMut) rectMut() {}

// Set replaces the event line; see TextMut.Set.
func (m *AssMut) Set(value string) error {
	return replaceString(m.alloc, &m.AsMutPtr().Ass, "ass", value)
}

// SetDialogue formats d as an event line and stores it with Set.
func (m *AssMut) SetDialogue(d Dialogue) error {
	return m.Set(d.String())
}

// AsBitmapMut returns r as a *BitmapMut or a *WrongVariantError.
func AsBitmapMut(r RectMut) (*BitmapMut, error) {
	if v, ok := r.(*BitmapMut); ok {
		return v, nil
	}
	return nil, &WrongVariantError{Want: TypeBitmap, Got: r.Type()}
}

// AsTextMut returns r as a *TextMut or a *WrongVariantError.
func AsTextMut(r RectMut) (*TextMut, error) {
	if v, ok := r.(*TextMut); ok {
		return v, nil
	}
	return nil, &WrongVariantError{Want: TypeText, Got: r.Type()}
}

// AsAssMut returns r as an *AssMut or a *WrongVariantError.
func AsAssMut(r RectMut) (*AssMut, error) {
	if v, ok := r.(*AssMut); ok {
		return v, nil
	}
	return nil, &WrongVariantError{Want: TypeAss, Got: r.Type()}
}
