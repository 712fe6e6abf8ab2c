package subtitle

import (
	"image"
	"image/color"
	"math"
	"unsafe"
)

// Bitmap is the read view of a bitmap rectangle: a palette-indexed raster
// positioned at (X, Y) inside the video frame.
type Bitmap struct {
	handle
}

func wrapBitmap(ptr *AVSubtitleRect) Bitmap { return Bitmap{handle{ptr}} }

func (Bitmap) Type() Type { return TypeBitmap }

func (b Bitmap) X() int { return int(b.ptr.X) }

func (b Bitmap) Y() int { return int(b.ptr.Y) }

// Width returns the stored width. Values of 1<<31 and above are kept
// bit-for-bit but describe no addressable pixels, so Row returns nil and
// Image clamps them.
func (b Bitmap) Width() uint32 { return uint32(b.ptr.W) }

func (b Bitmap) Height() uint32 { return uint32(b.ptr.H) }

// Colors returns the number of palette entries.
func (b Bitmap) Colors() int { return int(b.ptr.NbColors) }

// Stride returns the distance in bytes between two rows of Pixels.
func (b Bitmap) Stride() int { return int(b.ptr.Linesize[0]) }

// Pixels returns the palette indices, Stride() bytes per row and Height()
// rows. The slice aliases native memory and is only valid while the
// rectangle is neither modified nor freed.
func (b Bitmap) Pixels() []byte {
	p := b.ptr
	if p.Data[0] == nil || p.Linesize[0] <= 0 || p.H <= 0 {
		return nil
	}
	return unsafe.Slice(p.Data[0], int(p.Linesize[0])*int(p.H))
}

// Row returns the Width() indices of row y, or nil when y is out of range.
// Same validity rules as Pixels.
func (b Bitmap) Row(y int) []byte {
	pix := b.Pixels()
	w := int(b.ptr.W)
	if pix == nil || w <= 0 || w > b.Stride() || y < 0 || y >= int(b.ptr.H) {
		return nil
	}
	start := y * b.Stride()
	return pix[start : start+int(b.ptr.W)]
}

// Palette returns the Colors() palette entries as 0xAARRGGBB values.
// Same validity rules as Pixels.
func (b Bitmap) Palette() []uint32 {
	p := b.ptr
	if p.Data[1] == nil || p.NbColors <= 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(p.Data[1])), int(p.NbColors))
}

// Image copies the bitmap into a Go-owned paletted image with its origin at
// (0, 0). The size is clamped to what the pixel buffer holds, so a rectangle
// without pixels yields an empty image. Indices beyond the palette are kept
// as-is.
func (b Bitmap) Image() *image.Paletted {
	return palettedImage(int(b.ptr.W), int(b.ptr.H), b.Stride(), b.Pixels(), b.Palette())
}

// palettedImage copies a w x h raster out of pix. Sizes outside the int32
// range of the C fields count as zero, w is limited to stride and h to the
// rows pix holds.
func palettedImage(w, h, stride int, pix []byte, palette []uint32) *image.Paletted {
	w, h = clampSize(w, h, stride, len(pix))
	img := image.NewPaletted(image.Rect(0, 0, w, h), paletteFromARGB(palette))
	for y := 0; y < h; y++ {
		start := y * stride
		copy(img.Pix[y*img.Stride:], pix[start:start+w])
	}
	return img
}

func clampSize(w, h, stride, n int) (int, int) {
	if stride <= 0 || w <= 0 || h <= 0 || w > math.MaxInt32 || h > math.MaxInt32 {
		return 0, 0
	}
	w = min(w, stride)
	h = min(h, n/stride)
	if h <= 0 {
		return 0, 0
	}
	return w, h
}

func paletteFromARGB(entries []uint32) color.Palette {
	pal := make(color.Palette, len(entries))
	for i, v := range entries {
		pal[i] = color.NRGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: uint8(v >> 24),
		}
	}
	return pal
}
