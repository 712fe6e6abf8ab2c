package subtitle

import (
	"sync"
	"unsafe"
)

// Subtitle gives shared or exclusive access to the rectangles of a decoded
// AVSubtitle. The AVSubtitle stays owned by its producer, which frees it
// (avsubtitle_free) once no View or Edit call is running.
type Subtitle struct {
	ptr   *AVSubtitle
	alloc Allocator
	mu    sync.RWMutex
}

// NewSubtitle wraps a producer-owned AVSubtitle. alloc backs the string
// setters reached through Edit; pass the producer's allocator, normally
// the one returned by NativeAllocator.
func NewSubtitle(ptr *AVSubtitle, alloc Allocator) *Subtitle {
	return &Subtitle{ptr: ptr, alloc: alloc}
}

// Len returns the number of rectangles.
func (s *Subtitle) Len() int {
	if s.ptr == nil {
		return 0
	}
	return int(s.ptr.NumRects)
}

// Format returns 0 for graphic subtitles and 1 for text subtitles.
func (s *Subtitle) Format() uint16 {
	if s.ptr == nil {
		return 0
	}
	return s.ptr.Format
}

// AsPtr returns the wrapped AVSubtitle.
func (s *Subtitle) AsPtr() *AVSubtitle { return s.ptr }

func (s *Subtitle) rawRects() []*AVSubtitleRect {
	if s.ptr == nil || s.ptr.Rects == nil || s.ptr.NumRects == 0 {
		return nil
	}
	return unsafe.Slice(s.ptr.Rects, int(s.ptr.NumRects))
}

// View calls fn with read views of every rectangle. Any number of View
// calls may run concurrently; they exclude Edit. The views, and slices
// obtained from them, must not be retained after fn returns.
func (s *Subtitle) View(fn func(rects []Rect) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw := s.rawRects()
	rects := make([]Rect, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			rects = append(rects, Wrap(p))
		}
	}
	return fn(rects)
}

// Edit calls fn with mutable views of every rectangle while holding
// exclusive access. The views must not be retained after fn returns.
func (s *Subtitle) Edit(fn func(rects []RectMut) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.rawRects()
	rects := make([]RectMut, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			rects = append(rects, WrapMut(p, s.alloc))
		}
	}
	return fn(rects)
}

// Cues snapshots every rectangle under shared access.
func (s *Subtitle) Cues() ([]*Cue, error) {
	var cues []*Cue
	err := s.View(func(rects []Rect) error {
		cues = make([]*Cue, 0, len(rects))
		for _, r := range rects {
			c, err := NewCue(r)
			if err != nil {
				return err
			}
			cues = append(cues, c)
		}
		return nil
	})
	return cues, err
}
