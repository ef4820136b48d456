// Package zone provides typed access to a decompressed FastFile zone
// buffer: the header and the asset pool that the asset parsers in package
// assets key off of. Nothing in this package decodes the script-string
// region.
package zone

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// Header layout (52 bytes, fields at fixed offsets):
//
//	Offset  Size  Field
//	0x00    4     ZoneSize (total size minus header)
//	0x04    4     ExternalSize
//	0x08    4     BlockSizeTemp
//	0x0C    4     BlockSizePhysical
//	0x10    4     BlockSizeRuntime
//	0x14    4     BlockSizeVirtual
//	0x18    4     BlockSizeLarge
//	0x1C    4     BlockSizeCallback
//	0x20    4     BlockSizeVertex
//	0x24    4     ScriptStringCount
//	0x28    4     ScriptStringsPtr
//	0x2C    4     AssetCount
//	0x30    4     AssetsPtr
const (
	offZoneSize          = 0x00
	offExternalSize      = 0x04
	offBlockSizeTemp     = 0x08
	offBlockSizePhysical = 0x0C
	offBlockSizeRuntime  = 0x10
	offBlockSizeVirtual  = 0x14
	offBlockSizeLarge    = 0x18
	offBlockSizeCallback = 0x1C
	offBlockSizeVertex   = 0x20
	offScriptStringCount = 0x24
	offScriptStringsPtr  = 0x28
	offAssetCount        = 0x2C
	offAssetsPtr         = 0x30

	// HeaderSize is the fixed byte length of the zone header on every
	// platform; G3's extra prelude lives in the container, not here.
	HeaderSize = 0x34
)

// Header is the typed view over a zone buffer's fixed-offset fields. All
// fields are read/written big-endian on consoles, little-endian on PC, per
// the order passed to ParseHeader/Header.Put.
type Header struct {
	ZoneSize           uint32
	ExternalSize       uint32
	BlockSizeTemp      uint32
	BlockSizePhysical  uint32
	BlockSizeRuntime   uint32
	BlockSizeVirtual   uint32
	BlockSizeLarge     uint32
	BlockSizeCallback  uint32
	BlockSizeVertex    uint32
	ScriptStringCount  uint32
	ScriptStringsPtr   uint32
	AssetCount         uint32
	AssetsPtr          uint32
}

// ParseHeader reads the 52-byte header at the start of buf.
func ParseHeader(buf []byte, order byteio.Order) (Header, error) {
	var h Header
	var err error
	read := func(off int) uint32 {
		if err != nil {
			return 0
		}
		var v uint32
		v, err = order.U32(buf, off)
		return v
	}

	h.ZoneSize = read(offZoneSize)
	h.ExternalSize = read(offExternalSize)
	h.BlockSizeTemp = read(offBlockSizeTemp)
	h.BlockSizePhysical = read(offBlockSizePhysical)
	h.BlockSizeRuntime = read(offBlockSizeRuntime)
	h.BlockSizeVirtual = read(offBlockSizeVirtual)
	h.BlockSizeLarge = read(offBlockSizeLarge)
	h.BlockSizeCallback = read(offBlockSizeCallback)
	h.BlockSizeVertex = read(offBlockSizeVertex)
	h.ScriptStringCount = read(offScriptStringCount)
	h.ScriptStringsPtr = read(offScriptStringsPtr)
	h.AssetCount = read(offAssetCount)
	h.AssetsPtr = read(offAssetsPtr)
	if err != nil {
		return Header{}, core.Wrap(core.ZoneCorrupt, "reading zone header", err)
	}
	return h, nil
}

// Put writes h back into buf at the header's fixed offsets, for use after
// an in-place edit changes a size field (e.g. ZoneSize after a rebuild).
func (h Header) Put(buf []byte, order byteio.Order) error {
	writes := []struct {
		off int
		val uint32
	}{
		{offZoneSize, h.ZoneSize},
		{offExternalSize, h.ExternalSize},
		{offBlockSizeTemp, h.BlockSizeTemp},
		{offBlockSizePhysical, h.BlockSizePhysical},
		{offBlockSizeRuntime, h.BlockSizeRuntime},
		{offBlockSizeVirtual, h.BlockSizeVirtual},
		{offBlockSizeLarge, h.BlockSizeLarge},
		{offBlockSizeCallback, h.BlockSizeCallback},
		{offBlockSizeVertex, h.BlockSizeVertex},
		{offScriptStringCount, h.ScriptStringCount},
		{offScriptStringsPtr, h.ScriptStringsPtr},
		{offAssetCount, h.AssetCount},
		{offAssetsPtr, h.AssetsPtr},
	}
	for _, w := range writes {
		if err := order.PutU32(buf, w.off, w.val); err != nil {
			return core.Wrap(core.ZoneCorrupt, "writing zone header", err)
		}
	}
	return nil
}

// Fingerprint extracts the (BlockSizeTemp, BlockSizeVertex) pair that
// identifies the (game, platform) this zone was built for.
func (h Header) Fingerprint() core.Fingerprint {
	return core.Fingerprint{BlockSizeTemp: h.BlockSizeTemp, BlockSizeVertex: h.BlockSizeVertex}
}
