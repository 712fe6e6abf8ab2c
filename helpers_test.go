package subtitle

import (
	"sync"
	"unsafe"
)

// goAllocator hands out Go-heap strings and records every allocation so
// tests can check that setters free exactly what they replace.
type goAllocator struct {
	mu      sync.Mutex
	live    map[*byte][]byte
	allocs  int
	frees   int
	badFree int
	fail    bool
}

func newGoAllocator() *goAllocator {
	return &goAllocator{live: make(map[*byte][]byte)}
}

func (a *goAllocator) Strdup(s string) (*byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return nil, ErrOutOfMemory
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	p := &buf[0]
	a.live[p] = buf
	a.allocs++
	return p, nil
}

func (a *goAllocator) Free(p *byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[p]; !ok {
		a.badFree++
		return
	}
	delete(a.live, p)
	a.frees++
}

func (a *goAllocator) mustStrdup(s string) *byte {
	p, err := a.Strdup(s)
	if err != nil {
		panic(err)
	}
	return p
}

func newTextRect(a *goAllocator, text string) *AVSubtitleRect {
	return &AVSubtitleRect{Type: avSubtitleText, Text: a.mustStrdup(text)}
}

func newAssRect(a *goAllocator, line string) *AVSubtitleRect {
	return &AVSubtitleRect{Type: avSubtitleAss, Ass: a.mustStrdup(line)}
}

// newBitmapRect builds a w x h bitmap whose pixel at (x, y) is
// (x+y) % colors, with stride padding and an opaque grey-ramp palette.
func newBitmapRect(x, y, w, h, stride, colors int) (*AVSubtitleRect, []byte, []uint32) {
	pix := make([]byte, stride*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			pix[row*stride+col] = byte((col + row) % colors)
		}
		for col := w; col < stride; col++ {
			pix[row*stride+col] = 0xee
		}
	}
	pal := make([]uint32, colors)
	for i := range pal {
		v := uint32(i * 255 / max(colors-1, 1))
		pal[i] = 0xff000000 | v<<16 | v<<8 | v
	}
	r := &AVSubtitleRect{
		X:        int32(x),
		Y:        int32(y),
		W:        int32(w),
		H:        int32(h),
		NbColors: int32(colors),
		Type:     avSubtitleBitmap,
	}
	r.Data[0] = &pix[0]
	r.Data[1] = (*uint8)(unsafe.Pointer(&pal[0]))
	r.Linesize[0] = int32(stride)
	r.Linesize[1] = int32(4 * colors)
	return r, pix, pal
}
