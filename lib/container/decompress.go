package container

import (
	"bytes"
	"io"
	"strconv"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// G3Prelude is the extended MW2-style block that precedes the compressed
// blocks in a G3 console container. It is opaque to this
// toolkit apart from the FileSizes field, which is always rewritten on
// recompression; everything else is copied verbatim from the source file.
type G3Prelude struct {
	AllowOnlineUpdate byte
	FileCreationTime  uint64
	Region            uint32
	Entries           []byte // entryCount * 20 raw bytes, opaque
	FileSizes         uint64
}

const g3PreludeEntrySize = 20

// Decompress converts container bytes to raw zone bytes following the
// platform/signing decision tree. The returned prelude is non-nil only for G3 console
// files, and must be threaded back into Compress to round-trip it.
func Decompress(data []byte, h Header) (zone []byte, prelude *G3Prelude, err error) {
	order := byteio.OrderFor(h.Variant.Platform)
	bodyStart := magicLen + 4

	if h.Variant.Platform == core.PlatformWii {
		zone, err = inflateZlibStream(data[bodyStart:])
		if err != nil {
			return nil, nil, core.Wrap(core.DecompressFailed, "wii zlib stream", err)
		}
		return zone, nil, nil
	}

	if h.Variant.Signed == core.Signed || h.DevBuild {
		if zone, ok := scanForZlibCandidate(data, bodyStart); ok {
			return zone, nil, nil
		}
		// Fall through to block-compressed.
	}

	isG3Console := h.Variant.Game == core.Game3 && h.Variant.Platform != core.PlatformPC
	offset := bodyStart
	if isG3Console {
		p, next, perr := readG3Prelude(data, offset, order)
		if perr != nil {
			return nil, nil, perr
		}
		prelude = p
		offset = next
	}

	zone, err = decompressBlocks(data, offset, order)
	if err != nil {
		return nil, nil, err
	}
	return zone, prelude, nil
}

// readG3Prelude reads the extended MW2-style prelude that precedes the
// compressed blocks in a G3 console file.
func readG3Prelude(data []byte, offset int, order byteio.Order) (*G3Prelude, int, error) {
	allowOnlineUpdate, err := byteio.U8(data, offset)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: allowOnlineUpdate", err)
	}
	offset++

	hi, err := order.U32(data, offset)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: fileCreationTime hi", err)
	}
	lo, err := order.U32(data, offset+4)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: fileCreationTime lo", err)
	}
	fileCreationTime := combine64(hi, lo, order)
	offset += 8

	region, err := order.U32(data, offset)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: region", err)
	}
	offset += 4

	entryCount, err := byteio.BigEndian.U32(data, offset) // "entryCount:u32 BE"
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: entryCount", err)
	}
	offset += 4

	entriesLen := int(entryCount) * g3PreludeEntrySize
	entries, err := byteio.Slice(data, offset, entriesLen)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: entries", err)
	}
	entriesCopy := append([]byte(nil), entries...)
	offset += entriesLen

	fsHi, err := order.U32(data, offset)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: fileSizes hi", err)
	}
	fsLo, err := order.U32(data, offset+4)
	if err != nil {
		return nil, 0, core.Wrap(core.InvalidContainer, "G3 prelude: fileSizes lo", err)
	}
	fileSizes := combine64(fsHi, fsLo, order)
	offset += 8

	return &G3Prelude{
		AllowOnlineUpdate: allowOnlineUpdate,
		FileCreationTime:  fileCreationTime,
		Region:            region,
		Entries:           entriesCopy,
		FileSizes:         fileSizes,
	}, offset, nil
}

// combine64 merges two uint32 words into a uint64 using the given byte
// order's natural word ordering.
func combine64(first, second uint32, order byteio.Order) uint64 {
	if order == byteio.BigEndian {
		return uint64(first)<<32 | uint64(second)
	}
	return uint64(second)<<32 | uint64(first)
}

// decompressBlocks implements the block-compressed branch:
// repeatedly read a 2-byte length, stop at a 0/1 terminator, reject
// oversized blocks, and DEFLATE-decompress each one (auto-detecting a zlib
// header).
func decompressBlocks(data []byte, offset int, order byteio.Order) ([]byte, error) {
	var out []byte
	blockIndex := 0
	for {
		length, err := order.U16(data, offset)
		if err != nil {
			return nil, core.Wrap(core.DecompressFailed, "reading block length", err)
		}
		offset += 2

		if length == blockTerminator0 || length == blockTerminator1 {
			break
		}
		if int(length) > maxBlockLen {
			return nil, core.NewError(core.DecompressFailed, "block length exceeds 128 KiB")
		}

		block, err := byteio.Slice(data, offset, int(length))
		if err != nil {
			return nil, core.Wrap(core.DecompressFailed, "truncated block", err)
		}
		offset += int(length)

		decoded, err := decompressBlock(block)
		if err != nil {
			return nil, core.Wrap(core.DecompressFailed, "block "+strconv.Itoa(blockIndex), err)
		}
		out = append(out, decoded...)
		blockIndex++
	}
	if len(out) == 0 {
		return nil, core.NewError(core.DecompressFailed, "no decompressible data")
	}
	return out, nil
}

// decompressBlock decompresses a single block, auto-detecting whether it
// carries a zlib header.
func decompressBlock(block []byte) ([]byte, error) {
	if hasZlibHeader(block) {
		return inflateZlibStream(block)
	}
	return inflateRawDeflate(block)
}

func hasZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	return b[0] == 0x78 && isZlibFlagByte(b[1])
}

func isZlibFlagByte(b byte) bool {
	switch b {
	case 0x01, 0x5E, 0x9C, 0xDA:
		return true
	default:
		return false
	}
}

// maxZoneOutput caps the output of each inflate call: the whole stream on
// the Wii and signed paths, each block on the block-compressed path (where
// the total across blocks is not capped). Zones are typically well under
// 64 MB, so this is a generous ceiling against a corrupt or hostile stream.
const maxZoneOutput = 64 * 1024 * 1024

func inflateZlibStream(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, maxZoneOutput))
}

func inflateRawDeflate(b []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(b))
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, maxZoneOutput))
}

// scanForZlibCandidate implements the signed/dev-build branch:
// scan the first 256 KiB for a zlib header byte pair, try raw DEFLATE
// from header+2 and zlib from header, and accept the first candidate whose
// output exceeds 10 KiB.
func scanForZlibCandidate(data []byte, from int) ([]byte, bool) {
	limit := from + signedScanLimit
	if limit > len(data) {
		limit = len(data)
	}
	for i := from; i < limit-1; i++ {
		if data[i] != 0x78 || !isZlibFlagByte(data[i+1]) {
			continue
		}
		if out, err := inflateRawDeflate(data[i+2:]); err == nil && len(out) > signedScanMinOutput {
			return out, true
		}
		if out, err := inflateZlibStream(data[i:]); err == nil && len(out) > signedScanMinOutput {
			return out, true
		}
	}
	return nil, false
}
