// Package recording implements the compact command buffer at the heart of
// ink's "record, sort, execute" pipeline: [Recorder] appends [DrawOp]
// values and arena-backed payloads, [Recorder.Finish] seals them into an
// immutable [Recording], and [DrawPass] computes the order a backend
// should replay them in.
//
// Design follows the arena-offset approach of the original C++ "ink"
// library (include/ink/recording.hpp): a [DrawOp] never holds a pointer
// into variable-length data, only an (offset, count) pair into the
// Recording's [Arena]. This keeps DrawOp small and trivially copyable and
// lets a backend walk a sorted index list without chasing pointers.
package recording

import "math"

// Arena is an append-only growable byte buffer holding the variable-length
// payloads (strings, point lists) referenced by polyline and text DrawOps.
// Offsets returned by the store/allocate methods are stable for the life of
// the Arena; the only way to invalidate them is [Arena.Reset].
type Arena struct {
	data []byte
}

// defaultArenaCapacity is the Arena's initial capacity (spec §4.1).
const defaultArenaCapacity = 4096

// NewArena creates an empty Arena pre-sized to the spec's default capacity.
func NewArena() *Arena {
	return &Arena{data: make([]byte, 0, defaultArenaCapacity)}
}

// Allocate reserves n raw bytes and returns the offset of the first one.
func (a *Arena) Allocate(n int) uint32 {
	off := uint32(len(a.data))
	a.data = append(a.data, make([]byte, n)...)
	return off
}

// StoreBytes copies b into the arena and returns its offset.
func (a *Arena) StoreBytes(b []byte) uint32 {
	off := uint32(len(a.data))
	a.data = append(a.data, b...)
	return off
}

// StoreString appends s followed by a single trailing zero byte, and
// returns the offset of the first byte of s (spec §4.1).
func (a *Arena) StoreString(s string) uint32 {
	off := uint32(len(a.data))
	a.data = append(a.data, s...)
	a.data = append(a.data, 0)
	return off
}

// GetString reinterprets the bytes at off, up to byteLen, as a string. The
// caller is responsible for off+byteLen having been produced by a matching
// StoreString call (spec §4.1 — offsets are only meaningful paired with a
// length recorded by the Recorder).
func (a *Arena) GetString(off, byteLen uint32) string {
	return string(a.data[off : off+byteLen])
}

// pointSize is the serialized size, in bytes, of one Point (two float32s).
const pointSize = 8

// StorePoints copies pts (raw, memcpy-style) into the arena and returns the
// offset of the first point.
func (a *Arena) StorePoints(pts []Point) uint32 {
	off := uint32(len(a.data))
	for _, p := range pts {
		a.data = appendFloat32(a.data, p.X)
		a.data = appendFloat32(a.data, p.Y)
	}
	return off
}

// GetPoints reinterprets count points starting at off.
func (a *Arena) GetPoints(off uint32, count uint32) []Point {
	pts := make([]Point, count)
	for i := uint32(0); i < count; i++ {
		base := off + i*pointSize
		pts[i] = Point{
			X: readFloat32(a.data[base : base+4]),
			Y: readFloat32(a.data[base+4 : base+8]),
		}
	}
	return pts
}

// Reset truncates the arena to zero length without shrinking capacity.
func (a *Arena) Reset() {
	a.data = a.data[:0]
}

// Len returns the current length of the arena in bytes.
func (a *Arena) Len() int { return len(a.data) }

func appendFloat32(b []byte, v float32) []byte {
	bits := math.Float32bits(v)
	return append(b, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
