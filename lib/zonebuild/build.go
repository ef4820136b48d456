// Package zonebuild synthesizes a fresh zone buffer from raw files and
// localize entries only, producing bit-identical output for identical
// input: nothing in the output depends on map iteration order.
package zonebuild

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/zone"
)

// RawFileInput is one raw file to include in the built zone, in the order
// it should appear.
type RawFileInput struct {
	Name    string
	Content []byte
	// MaxSize is the allocated slot; if zero, len(Content) is used (no
	// extra padding).
	MaxSize uint32
}

// LocalizeInput is one localize entry to include, in order.
type LocalizeInput struct {
	Key  string
	Text string
}

// chunkAlignment is the padding boundary the builder rounds its output up
// to.
const chunkAlignment = 64 * 1024

// footerG12Size, footerG3Size are the fixed marker bytes preceding
// zone_name\0\0 in the footer; G3 carries a wider footer than G1/G2.
const (
	footerG12Size = 12
	footerG3Size  = 16
)

// Build produces a fresh zone buffer containing exactly the given raw
// files and localize entries, fingerprinted for variant, with a trailing
// terminator asset record, per the zone builder's fixed layout:
// header, asset table, raw-files section, localize section, footer, pad.
func Build(variant core.Variant, zoneName string, rawFiles []RawFileInput, localizes []LocalizeInput) ([]byte, error) {
	order := byteio.OrderFor(variant.Platform)
	fp, ok := core.FingerprintFor(variant)
	if !ok {
		return nil, core.NewError(core.UnsupportedVariant, "no known fingerprint for "+variant.String())
	}

	rawTypeID, ok := zone.TypeIDForKind(zone.KindRawFile, variant.Platform)
	if !ok {
		return nil, core.NewError(core.UnsupportedVariant, "no rawfile type id for this platform")
	}
	locTypeID, ok := zone.TypeIDForKind(zone.KindLocalize, variant.Platform)
	if !ok {
		return nil, core.NewError(core.UnsupportedVariant, "no localize type id for this platform")
	}

	assetTable := buildAssetTable(rawTypeID, locTypeID, len(rawFiles), len(localizes))
	rawSection := buildRawFilesSection(rawFiles)
	locSection := buildLocalizeSection(localizes)
	footer := buildFooter(variant, zoneName)

	body := append([]byte{}, assetTable...)
	body = append(body, rawSection...)
	body = append(body, locSection...)
	body = append(body, footer...)

	h := zone.Header{
		BlockSizeTemp:    fp.BlockSizeTemp,
		BlockSizeVertex:  fp.BlockSizeVertex,
		BlockSizeLarge:   uint32(len(rawSection) + len(locSection)),
		ScriptStringsPtr: 0xFFFFFFFF,
		AssetsPtr:        0xFFFFFFFF,
		AssetCount:       uint32(len(rawFiles) + len(localizes) + 1),
		ZoneSize:         uint32(len(body)),
	}

	out := make([]byte, zone.HeaderSize)
	if err := h.Put(out, order); err != nil {
		return nil, err
	}
	out = append(out, body...)

	for len(out)%chunkAlignment != 0 {
		out = append(out, 0)
	}
	return out, nil
}

// buildAssetTable emits rawfiles x [00 00 00 RAW_TYPE][FFFFFFFF], then
// localizes x [00 00 00 LOC_TYPE][FFFFFFFF], then one trailing terminator
// record reusing the raw-file type id.
func buildAssetTable(rawTypeID, locTypeID uint32, rawCount, locCount int) []byte {
	var out []byte
	for i := 0; i < rawCount; i++ {
		out = appendRecord(out, rawTypeID)
	}
	for i := 0; i < locCount; i++ {
		out = appendRecord(out, locTypeID)
	}
	out = appendRecord(out, rawTypeID)
	return out
}

func appendRecord(out []byte, typeID uint32) []byte {
	rec := make([]byte, 8)
	_ = byteio.BigEndian.PutU32(rec, 0, typeID)
	rec[4], rec[5], rec[6], rec[7] = 0xFF, 0xFF, 0xFF, 0xFF
	return append(out, rec...)
}

// buildRawFilesSection emits, per file, [FFFFFFFF][size:u32 BE][FFFFFFFF]
// [name\0][bytes][\0].
func buildRawFilesSection(files []RawFileInput) []byte {
	var out []byte
	for _, f := range files {
		maxSize := f.MaxSize
		if maxSize == 0 {
			maxSize = uint32(len(f.Content))
		}
		out = append(out, 0xFF, 0xFF, 0xFF, 0xFF)
		sizeBuf := make([]byte, 4)
		_ = byteio.BigEndian.PutU32(sizeBuf, 0, maxSize)
		out = append(out, sizeBuf...)
		out = append(out, 0xFF, 0xFF, 0xFF, 0xFF)
		out = append(out, []byte(f.Name)...)
		out = append(out, 0)
		padded := make([]byte, maxSize)
		copy(padded, f.Content)
		out = append(out, padded...)
		out = append(out, 0)
	}
	return out
}

// buildLocalizeSection emits, per entry, [FFFFFFFF x2][text\0][key\0].
func buildLocalizeSection(entries []LocalizeInput) []byte {
	var out []byte
	for _, e := range entries {
		out = append(out, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		out = append(out, []byte(e.Text)...)
		out = append(out, 0)
		out = append(out, []byte(e.Key)...)
		out = append(out, 0)
	}
	return out
}

// buildFooter emits the fixed marker bytes (12 for G1/G2, 16 for G3)
// followed by the zone name and a double NUL.
func buildFooter(variant core.Variant, zoneName string) []byte {
	size := footerG12Size
	if variant.Game == core.Game3 {
		size = footerG3Size
	}
	out := make([]byte, size)
	out = append(out, []byte(zoneName)...)
	out = append(out, 0, 0)
	return out
}
