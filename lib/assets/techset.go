package assets

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// techSetSlotCount is the fixed number of technique slots in a TechSet.
const techSetSlotCount = 16

// TechniqueSlot is one entry of a TechSet's fixed slot array: either null
// or a named technique with a present flag.
type TechniqueSlot struct {
	Name    string
	Present bool
}

// TechSet is a fixed-size array of technique slots.
type TechSet struct {
	span
	Name  string
	Slots [techSetSlotCount]TechniqueSlot
}

// ParseTechSet reads the name followed by techSetSlotCount (name-pointer,
// present-flag) pairs.
func ParseTechSet(buf []byte, order byteio.Order, nameOffset int) (TechSet, error) {
	name, offset, err := byteio.CString(buf, nameOffset)
	if err != nil {
		return TechSet{}, core.Wrap(core.ZoneCorrupt, "techset: reading name", err)
	}

	var ts TechSet
	ts.Name = name
	ts.StartOffset = nameOffset

	for i := 0; i < techSetSlotCount; i++ {
		ptr, err := order.U32(buf, offset)
		if err != nil {
			return TechSet{}, core.Wrap(core.ZoneCorrupt, "techset: reading slot pointer", err)
		}
		offset += 4
		flag, err := byteio.U8(buf, offset)
		if err != nil {
			return TechSet{}, core.Wrap(core.ZoneCorrupt, "techset: reading slot flag", err)
		}
		offset++

		if ptr == ptrSentinel || ptr == 0 {
			continue
		}
		slotName, _, err := byteio.CString(buf, int(ptr))
		if err != nil {
			return TechSet{}, core.Wrap(core.ZoneCorrupt, "techset: reading slot name", err)
		}
		ts.Slots[i] = TechniqueSlot{Name: slotName, Present: flag != 0}
	}
	ts.EndOffset = offset
	return ts, nil
}
