package subtitle

// Rect is a read-only view of one subtitle rectangle. It is a closed set:
// the dynamic type is exactly one of None, Bitmap, Text or Ass, chosen from
// the rectangle's type tag when the view is created.
//
//	switch r := subtitle.Wrap(ptr).(type) {
//	case subtitle.Bitmap:
//		fmt.Println(r.Width(), r.Height())
//	case subtitle.Text:
//		s, err := r.Get()
//	}
//
// A view borrows the rectangle. It must not be used after the producer
// frees it, nor while a RectMut over the same rectangle is writing.
type Rect interface {
	// Type returns the payload kind. It never changes for a given view.
	Type() Type

	// Flags returns the rectangle's flags field.
	Flags() Flags

	// AsPtr returns the borrowed rectangle.
	AsPtr() *AVSubtitleRect

	rect()
}

// handle is the borrowed rectangle shared by every variant.
type handle struct {
	ptr *AVSubtitleRect
}

func (h handle) AsPtr() *AVSubtitleRect { return h.ptr }

func (h handle) Flags() Flags { return FlagsFromBits(h.ptr.Flags) }

func (handle) rect() {}

// None is the view of a rectangle without payload.
type None struct {
	handle
}

func (None) Type() Type { return TypeNone }

// Wrap classifies ptr by its type tag and returns the matching view. ptr
// must be non-nil and its tag must describe its contents; both are
// guaranteed by libavcodec for the rectangles it produces.
func Wrap(ptr *AVSubtitleRect) Rect {
	switch typeFromRaw(ptr.Type) {
	case TypeBitmap:
		return wrapBitmap(ptr)
	case TypeText:
		return wrapText(ptr)
	case TypeAss:
		return wrapAss(ptr)
	default:
		return None{handle{ptr}}
	}
}

// AsBitmap returns r as a Bitmap or a *WrongVariantError.
func AsBitmap(r Rect) (Bitmap, error) {
	switch v := r.(type) {
	case Bitmap:
		return v, nil
	case *BitmapMut:
		return v.Bitmap, nil
	}
	return Bitmap{}, &WrongVariantError{Want: TypeBitmap, Got: r.Type()}
}

// AsText returns r as a Text or a *WrongVariantError.
func AsText(r Rect) (Text, error) {
	switch v := r.(type) {
	case Text:
		return v, nil
	case *TextMut:
		return v.Text, nil
	}
	return Text{}, &WrongVariantError{Want: TypeText, Got: r.Type()}
}

// AsAss returns r as an Ass or a *WrongVariantError.
func AsAss(r Rect) (Ass, error) {
	switch v := r.(type) {
	case Ass:
		return v, nil
	case *AssMut:
		return v.Ass, nil
	}
	return Ass{}, &WrongVariantError{Want: TypeAss, Got: r.Type()}
}
