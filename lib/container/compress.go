package container

import (
	"bytes"

	"github.com/klauspost/compress/zlib"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// SignedExtra carries the opaque signed-container data that must be
// preserved verbatim across a recompress. A nil or short HashTable is padded with
// zeros, matching the original file's convention: copy from the source or zero-pad.
type SignedExtra struct {
	HashTable []byte
}

// Compress converts zone bytes back to container bytes for the given
// variant, following the emission rules for recompression. prelude must be the
// value Decompress returned for this file when variant is G3 console (it is
// copied back verbatim except FileSizes, which is patched with the final
// output length). signedExtra supplies the hash table for signed variants;
// when it is nil, a zero-filled table is written.
func Compress(zone []byte, v core.Variant, prelude *G3Prelude, signedExtra *SignedExtra) ([]byte, error) {
	order := byteio.OrderFor(v.Platform)
	version, ok := versionFor(v)
	if !ok {
		return nil, core.NewError(core.UnsupportedVariant, "no known version constant for "+v.String())
	}

	switch {
	case v.Platform == core.PlatformWii:
		return compressWii(zone, version, order)
	case v.Signed == core.Signed:
		return compressSigned(zone, version, order, signedExtra)
	case v.Game == core.Game3 && v.Platform != core.PlatformPC:
		return compressG3Console(zone, version, order, prelude)
	default:
		return compressConsoleOrPC(zone, version, order)
	}
}

// compressConsoleOrPC implements the plain unsigned emission path:
// magic, version, then the zone in 64 KiB DEFLATE chunks with
// the zlib header stripped (leaving DEFLATE + Adler-32), each prefixed by a
// 2-byte length, terminated by 0x00 0x01 + 4 zero bytes.
func compressConsoleOrPC(zone []byte, version uint32, order byteio.Order) ([]byte, error) {
	out := make([]byte, 0, len(zone)/2+64)
	out = append(out, []byte(MagicUnsigned)...)
	out = appendU32(out, version, order)

	if err := appendChunks(&out, zone, order); err != nil {
		return nil, err
	}

	out = appendTerminator(out, order)
	return out, nil
}

// compressG3Console precedes the blocks with the extended prelude, copied
// verbatim from the source file except FileSizes, which is patched with the
// final output length once it's known.
func compressG3Console(zone []byte, version uint32, order byteio.Order, prelude *G3Prelude) ([]byte, error) {
	if prelude == nil {
		return nil, core.NewError(core.IoFailed, "G3 console recompress requires the original file's prelude")
	}
	out := make([]byte, 0, len(zone)/2+64+len(prelude.Entries))
	out = append(out, []byte(MagicUnsigned)...)
	out = appendU32(out, version, order)

	out = append(out, prelude.AllowOnlineUpdate)
	out = appendU64(out, prelude.FileCreationTime, order)
	out = appendU32(out, prelude.Region, order)
	out = appendU32(out, uint32(len(prelude.Entries)/g3PreludeEntrySize), byteio.BigEndian)
	out = append(out, prelude.Entries...)
	fileSizesAt := len(out)
	out = appendU64(out, 0, order) // patched below once total length is known

	if err := appendChunks(&out, zone, order); err != nil {
		return nil, err
	}
	out = appendTerminator(out, order)

	patchU64(out, fileSizesAt, uint64(len(out)), order)
	return out, nil
}

// compressSigned implements the Xbox-style signed emission path: magic,
// version, streaming marker, the opaque hash table, then the whole zone as
// a single best-compression zlib stream with no terminator.
func compressSigned(zone []byte, version uint32, order byteio.Order, extra *SignedExtra) ([]byte, error) {
	out := make([]byte, 0, len(zone)/2+64+HashTableSize)
	out = append(out, []byte(MagicSigned)...)
	out = appendU32(out, version, order)
	out = append(out, []byte(MagicStreaming)...)

	hashTable := make([]byte, HashTableSize)
	if extra != nil {
		copy(hashTable, extra.HashTable)
	}
	out = append(out, hashTable...)

	stream, err := deflateZlibBestCompression(zone)
	if err != nil {
		return nil, core.Wrap(core.DecompressFailed, "compressing signed zone stream", err)
	}
	out = append(out, stream...)
	return out, nil
}

// compressWii wraps the zone in a single zlib stream immediately after the
// magic+version header.
func compressWii(zone []byte, version uint32, order byteio.Order) ([]byte, error) {
	out := make([]byte, 0, len(zone)/2+64)
	out = append(out, []byte(MagicUnsigned)...)
	out = appendU32(out, version, order)

	stream, err := deflateZlibBestCompression(zone)
	if err != nil {
		return nil, core.Wrap(core.DecompressFailed, "compressing wii zone stream", err)
	}
	out = append(out, stream...)
	return out, nil
}

// appendChunks splits zone into chunkSize pieces, DEFLATE-compresses each
// with zlib then strips the 2-byte zlib header (leaving DEFLATE data plus
// the trailing Adler-32), and appends each as [length][payload].
func appendChunks(out *[]byte, zone []byte, order byteio.Order) error {
	for offset := 0; offset < len(zone); offset += chunkSize {
		end := offset + chunkSize
		if end > len(zone) {
			end = len(zone)
		}
		compressed, err := deflateZlibBestCompression(zone[offset:end])
		if err != nil {
			return core.Wrap(core.DecompressFailed, "compressing chunk", err)
		}
		if len(compressed) < 2 {
			return core.NewError(core.DecompressFailed, "zlib stream shorter than its own header")
		}
		payload := compressed[2:] // strip the 2-byte zlib header
		*out = appendU16(*out, uint16(len(payload)), order)
		*out = append(*out, payload...)
	}
	return nil
}

func appendTerminator(out []byte, order byteio.Order) []byte {
	out = appendU16(out, blockTerminator1, order)
	out = append(out, 0, 0, 0, 0)
	return out
}

func deflateZlibBestCompression(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendU16(out []byte, v uint16, order byteio.Order) []byte {
	buf := make([]byte, 2)
	_ = order.PutU16(buf, 0, v)
	return append(out, buf...)
}

func appendU32(out []byte, v uint32, order byteio.Order) []byte {
	buf := make([]byte, 4)
	_ = order.PutU32(buf, 0, v)
	return append(out, buf...)
}

func appendU64(out []byte, v uint64, order byteio.Order) []byte {
	hi, lo := uint32(v>>32), uint32(v)
	if order != byteio.BigEndian {
		hi, lo = uint32(v), uint32(v>>32)
	}
	out = appendU32(out, hi, order)
	out = appendU32(out, lo, order)
	return out
}

func patchU64(buf []byte, at int, v uint64, order byteio.Order) {
	hi, lo := uint32(v>>32), uint32(v)
	if order != byteio.BigEndian {
		hi, lo = uint32(v), uint32(v>>32)
	}
	_ = order.PutU32(buf, at, hi)
	_ = order.PutU32(buf, at+4, lo)
}
