//go:build (darwin || linux) && !(cgo && avcgo)

// libavutil bindings loaded at runtime with purego.

package subtitle

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	avutilOnce    sync.Once
	avutilHandle  uintptr
	avutilInitErr error
)

// libavutil function pointers
var (
	avStrdup      func(s string) *byte
	avFree        func(ptr unsafe.Pointer)
	avMallocz     func(size uintptr) unsafe.Pointer
	avutilVersion func() uint32
)

func loadAvutil() error {
	avutilOnce.Do(func() {
		avutilInitErr = loadAvutilLib()
	})
	return avutilInitErr
}

func loadAvutilLib() error {
	var lastErr error
	for _, path := range getAvutilLibPaths() {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		avutilHandle = handle
		if err := loadAvutilSymbols(); err != nil {
			logger.Debugf("%s: %v", path, err)
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		if err := checkAvutilVersion(avutilVersion()); err != nil {
			logger.Debugf("%s: %v", path, err)
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		logger.Debugf("loaded libavutil from %s", path)
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %w", ErrLibraryNotFound, lastErr)
	}
	return ErrLibraryNotFound
}

func loadAvutilSymbols() error {
	symbols := []struct {
		fptr any
		name string
	}{
		{&avStrdup, "av_strdup"},
		{&avFree, "av_free"},
		{&avMallocz, "av_mallocz"},
		{&avutilVersion, "avutil_version"},
	}
	// Resolve everything first: RegisterLibFunc panics on a missing symbol.
	addrs := make([]uintptr, len(symbols))
	for i, s := range symbols {
		addr, err := purego.Dlsym(avutilHandle, s.name)
		if err != nil {
			return fmt.Errorf("symbol %s: %w", s.name, err)
		}
		addrs[i] = addr
	}
	for i, s := range symbols {
		purego.RegisterFunc(s.fptr, addrs[i])
	}
	return nil
}

func nativeStrdup(s string) *byte { return avStrdup(s) }

func nativeFree(p *byte) { avFree(unsafe.Pointer(p)) }

func nativeMallocz(size uintptr) unsafe.Pointer { return avMallocz(size) }

func nativeVersion() uint32 { return avutilVersion() }
