package subtitle

import "image"

// Cue is a Go-owned copy of one subtitle rectangle. Unlike the views it
// does not reference native memory, so it can outlive the AVSubtitle and
// be handed to transports.
type Cue struct {
	Type  Type
	Flags Flags

	// Bitmap payload
	X, Y    int
	Width   int
	Height  int
	Stride  int
	Pixels  []byte   // Palette indices, Stride bytes per row
	Palette []uint32 // 0xAARRGGBB entries

	Text string // Text payload
	Ass  string // ASS event line
}

// NewCue copies r. Text and ASS payloads that are not valid UTF-8 yield a
// *DecodeError.
func NewCue(r Rect) (*Cue, error) {
	c := &Cue{Type: r.Type(), Flags: r.Flags()}
	switch v := r.(type) {
	case Bitmap:
		c.copyBitmap(v)
	case *BitmapMut:
		c.copyBitmap(v.Bitmap)
	case Text:
		return c, c.copyText(v)
	case *TextMut:
		return c, c.copyText(v.Text)
	case Ass:
		return c, c.copyAss(v)
	case *AssMut:
		return c, c.copyAss(v.Ass)
	}
	return c, nil
}

func (c *Cue) copyBitmap(b Bitmap) {
	c.X, c.Y = b.X(), b.Y()
	c.Width, c.Height = int(b.Width()), int(b.Height())
	c.Stride = b.Stride()
	if pix := b.Pixels(); pix != nil {
		c.Pixels = make([]byte, len(pix))
		copy(c.Pixels, pix)
	}
	if pal := b.Palette(); pal != nil {
		c.Palette = make([]uint32, len(pal))
		copy(c.Palette, pal)
	}
}

func (c *Cue) copyText(t Text) error {
	s, err := t.Get()
	if err != nil {
		return err
	}
	c.Text = s
	return nil
}

func (c *Cue) copyAss(a Ass) error {
	s, err := a.Get()
	if err != nil {
		return err
	}
	c.Ass = s
	return nil
}

// PlainText returns the readable text of a Text or Ass cue, with ASS
// override tags removed. Bitmap and None cues return "".
func (c *Cue) PlainText() string {
	switch c.Type {
	case TypeText:
		return c.Text
	case TypeAss:
		d, err := ParseDialogue(c.Ass)
		if err != nil {
			return c.Ass
		}
		return d.PlainText()
	default:
		return ""
	}
}

// Image returns the bitmap payload as a paletted image with its origin at
// (0, 0), or nil for cues without a bitmap. As with Bitmap.Image the size
// is clamped to the copied pixels.
func (c *Cue) Image() *image.Paletted {
	if c.Type != TypeBitmap {
		return nil
	}
	return palettedImage(c.Width, c.Height, c.Stride, c.Pixels, c.Palette)
}

// Clone creates a deep copy of the cue.
func (c *Cue) Clone() *Cue {
	clone := *c
	if c.Pixels != nil {
		clone.Pixels = make([]byte, len(c.Pixels))
		copy(clone.Pixels, c.Pixels)
	}
	if c.Palette != nil {
		clone.Palette = make([]uint32, len(c.Palette))
		copy(clone.Palette, c.Palette)
	}
	return &clone
}
