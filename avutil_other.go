//go:build !darwin && !linux

package subtitle

import "unsafe"

func loadAvutil() error { return ErrLibraryNotFound }

func nativeStrdup(string) *byte { return nil }

func nativeFree(*byte) {}

func nativeMallocz(uintptr) unsafe.Pointer { return nil }

func nativeVersion() uint32 { return 0 }
