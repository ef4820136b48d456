package assets

import (
	"strings"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// RawFile is an inline ASCII asset referenced by path, e.g. a .gsc script.
// Body layout: [0xFFFFFFFF][size:u32][0xFFFFFFFF][name\0][bytes][\0].
type RawFile struct {
	span
	Name string
	// MaxSize is the allocated slot; Content may be shorter and is
	// null-padded up to MaxSize on disk.
	MaxSize    uint32
	DataOffset int
	Content    []byte
}

// ParseRawFile walks forward from searchFrom for one of the recognized
// extensions followed by a NUL, then walks backward to the 0xFFFFFFFF
// marker that immediately precedes the name, and from there to the
// 4-byte size field and the marker that precedes it, per the rawfile
// layout: [0xFFFFFFFF][size][0xFFFFFFFF][name\0].
func ParseRawFile(buf []byte, order byteio.Order, searchFrom int) (RawFile, error) {
	nameEnd, _, ok := scanForExtension(buf, searchFrom)
	if !ok {
		return RawFile{}, ErrSkipped
	}

	nameStart, err := walkBackToName(buf, nameEnd)
	if err != nil {
		return RawFile{}, err
	}

	marker2Offset := nameStart - 4
	sizeOffset := marker2Offset - 4
	markerOffset := sizeOffset - 4
	if markerOffset < 0 {
		return RawFile{}, core.NewError(core.ZoneCorrupt, "rawfile: name starts before marker region")
	}

	marker1, err := order.U32(buf, markerOffset)
	if err != nil || marker1 != ptrSentinel {
		return RawFile{}, core.NewError(core.ZoneCorrupt, "rawfile: missing leading 0xFFFFFFFF marker")
	}
	marker2, err := order.U32(buf, marker2Offset)
	if err != nil || marker2 != ptrSentinel {
		return RawFile{}, core.NewError(core.ZoneCorrupt, "rawfile: missing 0xFFFFFFFF marker before name")
	}
	// size is always big-endian regardless of platform, like the asset-pool
	// record's type field.
	size, err := byteio.BigEndian.U32(buf, sizeOffset)
	if err != nil {
		return RawFile{}, core.Wrap(core.ZoneCorrupt, "rawfile: reading size field", err)
	}

	name, contentStart, err := byteio.CString(buf, nameStart)
	if err != nil {
		return RawFile{}, core.Wrap(core.ZoneCorrupt, "rawfile: reading name", err)
	}

	contentEnd := contentStart + int(size)
	content, err := byteio.Slice(buf, contentStart, int(size))
	if err != nil {
		return RawFile{}, core.Wrap(core.ZoneCorrupt, "rawfile: reading content", err)
	}
	// Actual content may be shorter than MaxSize and null-padded; trim
	// trailing NULs for the in-memory view while MaxSize keeps the slot size.
	trimmed := content
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == 0 {
		trimmed = trimmed[:len(trimmed)-1]
	}

	return RawFile{
		span:       span{StartOffset: markerOffset, EndOffset: contentEnd + 1}, // +1 for trailing NUL
		Name:       name,
		MaxSize:    size,
		DataOffset: contentStart,
		Content:    append([]byte(nil), trimmed...),
	}, nil
}

// scanForExtension finds the first occurrence, at or after from, of one of
// rawFileExtensions immediately followed by a NUL byte, and returns the
// offset just past the extension (i.e. the NUL's offset) plus which
// extension matched.
func scanForExtension(buf []byte, from int) (nulOffset int, ext string, ok bool) {
	best := -1
	bestExt := ""
	for _, e := range rawFileExtensions {
		idx := strings.Index(string(buf[min(from, len(buf)):]), e+"\x00")
		if idx < 0 {
			continue
		}
		absolute := min(from, len(buf)) + idx + len(e)
		if best == -1 || absolute < best {
			best = absolute
			bestExt = e
		}
	}
	if best == -1 {
		return 0, "", false
	}
	return best, bestExt, true
}

// walkBackToName finds where the asset name begins by scanning backward
// from nameEnd (the offset of the NUL that terminates the name, or any
// offset within the name) for the nearest run of four 0xFF bytes -- the
// marker that immediately precedes the name in the rawfile layout.
func walkBackToName(buf []byte, nameEnd int) (int, error) {
	for i := nameEnd; i >= 4; i-- {
		if buf[i-4] == 0xFF && buf[i-3] == 0xFF && buf[i-2] == 0xFF && buf[i-1] == 0xFF {
			return i, nil
		}
	}
	return 0, core.NewError(core.ZoneCorrupt, "rawfile: no marker found before name")
}

// Patch rewrites the raw file's content in place. newContent must be no
// longer than r.MaxSize; the remainder of the slot is zero-padded.
func (r RawFile) Patch(buf []byte, newContent []byte) error {
	if uint32(len(newContent)) > r.MaxSize {
		return core.NewError(core.EditTooLarge, "rawfile content exceeds MaxSize")
	}
	slot, err := byteio.Slice(buf, r.DataOffset, int(r.MaxSize))
	if err != nil {
		return core.Wrap(core.ZoneCorrupt, "rawfile: locating content slot", err)
	}
	copy(slot, newContent)
	for i := len(newContent); i < len(slot); i++ {
		slot[i] = 0
	}
	return nil
}
