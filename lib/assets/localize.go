package assets

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// LocalizeCase distinguishes the two geometries a Localize entry's body
// can take.
type LocalizeCase int

const (
	// LocalizeCaseA entries carry a non-empty text field before the key.
	LocalizeCaseA LocalizeCase = iota
	// LocalizeCaseB entries have an empty text field; the key follows the
	// marker directly.
	LocalizeCaseB
)

// localizeMarkerSize is the width of the leading 0xFF x 4 sentinel pair
// (two u32 words) that precedes every localize body.
const localizeMarkerSize = 8

// Localize is a (key, text) pair. Case A entries have a text region whose
// size (text_area_size) bounds in-place edits; Case B entries have none.
type Localize struct {
	span
	Case LocalizeCase
	Key  string
	Text string

	textStart     int
	keyStart      int
	textAreaSize  int // only meaningful for Case A
}

// ParseLocalize reads the localize body starting at recordStart, the
// offset immediately after the two-word 0xFF marker.
func ParseLocalize(buf []byte, order byteio.Order, recordStart int) (Localize, error) {
	if looksLikeKeyStart(buf, recordStart) {
		key, after, err := byteio.CString(buf, recordStart)
		if err != nil {
			return Localize{}, core.Wrap(core.ZoneCorrupt, "localize: reading case B key", err)
		}
		return Localize{
			span:     span{StartOffset: recordStart - localizeMarkerSize, EndOffset: after},
			Case:     LocalizeCaseB,
			Key:      key,
			keyStart: recordStart,
		}, nil
	}

	text, keyStart, err := byteio.CString(buf, recordStart)
	if err != nil {
		return Localize{}, core.Wrap(core.ZoneCorrupt, "localize: reading case A text", err)
	}
	key, after, err := byteio.CString(buf, keyStart)
	if err != nil {
		return Localize{}, core.Wrap(core.ZoneCorrupt, "localize: reading case A key", err)
	}

	return Localize{
		span:         span{StartOffset: recordStart - localizeMarkerSize, EndOffset: after},
		Case:         LocalizeCaseA,
		Key:          key,
		Text:         text,
		textStart:    recordStart,
		keyStart:     keyStart,
		textAreaSize: keyStart - recordStart,
	}, nil
}

// TextAreaSize reports the number of bytes available for the text field
// (only meaningful for Case A; Case B always returns 0).
func (l Localize) TextAreaSize() int {
	if l.Case == LocalizeCaseB {
		return 0
	}
	return l.textAreaSize
}

// looksLikeKeyStart distinguishes Case B (key immediately after the
// marker) from Case A (text then key) by checking whether the bytes at
// offset form a valid key pattern: ASCII letters/digits/underscore
// followed eventually by NUL, with no other printable-but-non-key bytes.
func looksLikeKeyStart(buf []byte, offset int) bool {
	i := offset
	sawChar := false
	for i < len(buf) && buf[i] != 0 {
		b := buf[i]
		if !isKeyByte(b) {
			return false
		}
		sawChar = true
		i++
	}
	return sawChar && i < len(buf)
}

func isKeyByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '_':
		return true
	default:
		return false
	}
}

// Patch rewrites a Case A entry's text in place: newText at textStart,
// remaining bytes up to (but not including) the null terminator before
// keyStart filled with 0x20, and a single 0x00 written immediately before
// keyStart. The key itself is never touched. Returns EditTooLarge if
// newText doesn't fit with room for its terminator.
func (l Localize) Patch(buf []byte, newText string) error {
	if l.Case == LocalizeCaseB {
		if newText == "" {
			return nil // no-op, per the boundary rule for empty Case B edits
		}
		return core.NewError(core.EditTooLarge, "localize: case B entries have no text region")
	}
	if len(newText)+1 > l.textAreaSize {
		return core.NewError(core.EditTooLarge, "localize: new text does not fit text_area_size")
	}
	region, err := byteio.Slice(buf, l.textStart, l.textAreaSize)
	if err != nil {
		return core.Wrap(core.ZoneCorrupt, "localize: locating text region", err)
	}
	copy(region, newText)
	for i := len(newText); i < len(region)-1; i++ {
		region[i] = ' '
	}
	region[len(region)-1] = 0
	return nil
}
