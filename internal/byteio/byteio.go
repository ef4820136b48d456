// Package byteio provides the endian-safe, bounds-checked read/write
// primitives every parser in this module builds on. Every
// read bounds-checks against the buffer length and returns a recoverable
// error instead of panicking; reads never allocate, they return views over
// the caller's buffer.
package byteio

import (
	"encoding/binary"
	"strconv"

	"github.com/sargunv/fastfile-tools/lib/core"
)

// boundsErr builds the *core.Error of kind BoundsExceeded returned when a
// read or slice would run past the end of the buffer.
func boundsErr(op string, offset, need, have int) error {
	return core.Wrap(core.BoundsExceeded, op, &boundsDetail{offset: offset, need: need, have: have})
}

type boundsDetail struct {
	offset, need, have int
}

func (b *boundsDetail) Error() string {
	return "offset " + strconv.Itoa(b.offset) + " needs " + strconv.Itoa(b.need) + " bytes, buffer has " + strconv.Itoa(b.have)
}

// Order is either big- or little-endian, chosen by the
// detected platform (core.Platform.BigEndian).
type Order struct {
	big bool
}

// BigEndian is the order used by console and Wii variants.
var BigEndian = Order{big: true}

// LittleEndian is the order used by PC variants.
var LittleEndian = Order{big: false}

// OrderFor returns the byte order for a platform.
func OrderFor(p core.Platform) Order {
	if p.BigEndian() {
		return BigEndian
	}
	return LittleEndian
}

func (o Order) std() binary.ByteOrder {
	if o.big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// U8 reads a single byte at offset.
func U8(buf []byte, offset int) (byte, error) {
	if offset < 0 || offset+1 > len(buf) {
		return 0, boundsErr("U8", offset, 1, len(buf))
	}
	return buf[offset], nil
}

// U16 reads a uint16 at offset in the given byte order.
func (o Order) U16(buf []byte, offset int) (uint16, error) {
	if offset < 0 || offset+2 > len(buf) {
		return 0, boundsErr("U16", offset, 2, len(buf))
	}
	return o.std().Uint16(buf[offset:]), nil
}

// U32 reads a uint32 at offset in the given byte order.
func (o Order) U32(buf []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, boundsErr("U32", offset, 4, len(buf))
	}
	return o.std().Uint32(buf[offset:]), nil
}

// I32 reads an int32 at offset in the given byte order.
func (o Order) I32(buf []byte, offset int) (int32, error) {
	v, err := o.U32(buf, offset)
	return int32(v), err
}

// PutU16 writes a uint16 at offset in the given byte order.
func (o Order) PutU16(buf []byte, offset int, v uint16) error {
	if offset < 0 || offset+2 > len(buf) {
		return boundsErr("PutU16", offset, 2, len(buf))
	}
	o.std().PutUint16(buf[offset:], v)
	return nil
}

// PutU32 writes a uint32 at offset in the given byte order.
func (o Order) PutU32(buf []byte, offset int, v uint32) error {
	if offset < 0 || offset+4 > len(buf) {
		return boundsErr("PutU32", offset, 4, len(buf))
	}
	o.std().PutUint32(buf[offset:], v)
	return nil
}

// Slice returns a bounds-checked borrowed view buf[offset:offset+length].
// No copy is made; callers that need an owned copy should append it to nil.
func Slice(buf []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(buf) {
		return nil, boundsErr("Slice", offset, length, len(buf))
	}
	return buf[offset : offset+length], nil
}

// CString extracts a null-terminated ASCII string starting at offset.
// Returns the decoded string and the offset immediately after the
// terminating NUL. Fails with BoundsExceeded if no NUL is found before the
// end of the buffer.
func CString(buf []byte, offset int) (string, int, error) {
	if offset < 0 || offset > len(buf) {
		return "", 0, boundsErr("CString", offset, 0, len(buf))
	}
	for i := offset; i < len(buf); i++ {
		if buf[i] == 0 {
			return string(buf[offset:i]), i + 1, nil
		}
	}
	return "", 0, boundsErr("CString (unterminated)", offset, len(buf)-offset, len(buf))
}

// FindPattern does a naive forward scan for pat starting at `from`. It is
// the one scan primitive reused across the asset-pool
// locator, the raw-file extractor, and the converter's name-replacement
// pass. Zone buffers are typically under 10 MB, so a naive scan is
// sufficient.
func FindPattern(buf []byte, from int, pat []byte) int {
	if from < 0 {
		from = 0
	}
	if len(pat) == 0 || from+len(pat) > len(buf) {
		return -1
	}
	end := len(buf) - len(pat)
	for i := from; i <= end; i++ {
		if matchAt(buf, i, pat) {
			return i
		}
	}
	return -1
}

func matchAt(buf []byte, i int, pat []byte) bool {
	for j := range pat {
		if buf[i+j] != pat[j] {
			return false
		}
	}
	return true
}
