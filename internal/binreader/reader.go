// Package binreader decodes the little-endian primitives used throughout
// the Aseprite file format: fixed-width integers, 16.16 fixed-point values,
// and WORD-length-prefixed strings, plus bounds-checked sub-slice
// extraction for chunk payloads.
package binreader

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortRead is wrapped into every error a Reader returns for input that
// ends before a requested field or sub-slice. Callers can test for it with
// errors.Is even after it has been wrapped into a higher-level error type.
var ErrShortRead = errors.New("binreader: short read")

// Reader is a cursor over a byte slice. It never panics on short input;
// every read method returns an error instead so callers can turn it into a
// typed parse error with the offending offset attached.
type Reader struct {
	buf []byte
	pos int
}

// New wraps buf for sequential reading starting at offset 0.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current byte offset into the underlying buffer.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortRead, n, r.pos, r.Len())
	}
	return nil
}

// U8 reads one unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// U16 reads a little-endian uint16 (Aseprite's WORD).
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// U32 reads a little-endian uint32 (Aseprite's DWORD).
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// I16 reads a little-endian int16 (Aseprite's SHORT).
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// I32 reads a little-endian int32 (Aseprite's LONG).
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64 (Aseprite's QWORD).
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// Fixed16_16 reads a 16.16 fixed-point value stored as a signed 32-bit
// integer and returns it as a float64.
func (r *Reader) Fixed16_16() (float64, error) {
	v, err := r.I32()
	if err != nil {
		return 0, err
	}
	return float64(v) / 65536.0, nil
}

// String reads a u16 byte length followed by that many UTF-8 bytes (no
// terminator), Aseprite's STRING type.
func (r *Reader) String() (string, error) {
	n, err := r.U16()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Bytes returns the next n bytes as a sub-slice of the underlying buffer
// (not a copy) and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without inspecting them, used for
// reserved/padding fields.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

// Rest returns every remaining unread byte as a sub-slice, without
// advancing the cursor.
func (r *Reader) Rest() []byte {
	return r.buf[r.pos:]
}
