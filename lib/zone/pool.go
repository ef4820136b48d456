package zone

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// recordSize is the fixed byte length of an asset-pool record:
// [type:u32 BE][ptr:u32], ptr always the inline sentinel 0xFFFFFFFF.
const recordSize = 8

const ptrSentinel = 0xFFFFFFFF

// Record is one entry of the asset pool: its type ID, the kind that ID
// maps to on this platform, and the byte offset of the record itself
// within the zone buffer (the "pool offset").
type Record struct {
	TypeID     uint32
	Kind       Kind
	PoolOffset int
}

// FindPool locates the asset pool by scanning forward from searchFrom for
// the first run of two or more consecutive 8-byte records matching
// [00 00 00 XX][FF FF FF FF] with XX in the valid type-ID range. It then
// reads exactly h.AssetCount records starting at the run's first match.
func FindPool(buf []byte, h Header, order byteio.Order, searchFrom int, platform core.Platform) ([]Record, error) {
	start, err := locatePoolStart(buf, searchFrom)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, h.AssetCount)
	offset := start
	for i := uint32(0); i < h.AssetCount; i++ {
		typeID, ptr, err := readRecord(buf, offset, order)
		if err != nil {
			return nil, core.Wrap(core.ZoneCorrupt, "reading asset record", err)
		}
		if ptr != ptrSentinel {
			return nil, core.NewError(core.ZoneCorrupt, "asset record ptr is not the inline sentinel")
		}
		records = append(records, Record{
			TypeID:     typeID,
			Kind:       KindForTypeID(typeID, platform),
			PoolOffset: offset,
		})
		offset += recordSize
	}
	return records, nil
}

// locatePoolStart implements the scanning heuristic: starting at
// searchFrom, find the first run of >= 2 consecutive records whose type
// byte is in [minTypeID, maxTypeID] and whose ptr word is the inline
// sentinel.
func locatePoolStart(buf []byte, searchFrom int) (int, error) {
	for offset := searchFrom; offset+2*recordSize <= len(buf); offset++ {
		if looksLikeRecord(buf, offset) && looksLikeRecord(buf, offset+recordSize) {
			return offset, nil
		}
	}
	return 0, core.NewError(core.ZoneCorrupt, "no asset pool found after script-string region")
}

func looksLikeRecord(buf []byte, offset int) bool {
	if offset+recordSize > len(buf) {
		return false
	}
	if buf[offset] != 0 || buf[offset+1] != 0 || buf[offset+2] != 0 {
		return false
	}
	typeByte := buf[offset+3]
	if typeByte < minTypeID || typeByte > maxTypeID {
		return false
	}
	ptr := buf[offset+4 : offset+8]
	return ptr[0] == 0xFF && ptr[1] == 0xFF && ptr[2] == 0xFF && ptr[3] == 0xFF
}

func readRecord(buf []byte, offset int, order byteio.Order) (typeID, ptr uint32, err error) {
	typeID, err = byteio.BigEndian.U32(buf, offset)
	if err != nil {
		return 0, 0, err
	}
	ptr, err = order.U32(buf, offset+4)
	if err != nil {
		return 0, 0, err
	}
	return typeID, ptr, nil
}
