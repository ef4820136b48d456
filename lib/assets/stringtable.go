package assets

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// StringTable is a named grid of cell texts, read row-major.
type StringTable struct {
	span
	Name    string
	Rows    int
	Cols    int
	Cells   []string // len == Rows*Cols, row-major
}

// ParseStringTable reads (row_count, column_count) as big-endian u32s,
// then a pointer table of rows*cols entries, each either inline text or an
// external reference (skipped, left as an empty cell).
func ParseStringTable(buf []byte, order byteio.Order, nameOffset int) (StringTable, error) {
	name, after, err := byteio.CString(buf, nameOffset)
	if err != nil {
		return StringTable{}, core.Wrap(core.ZoneCorrupt, "stringtable: reading name", err)
	}

	rows, err := byteio.BigEndian.U32(buf, after)
	if err != nil {
		return StringTable{}, core.Wrap(core.ZoneCorrupt, "stringtable: reading row count", err)
	}
	cols, err := byteio.BigEndian.U32(buf, after+4)
	if err != nil {
		return StringTable{}, core.Wrap(core.ZoneCorrupt, "stringtable: reading column count", err)
	}
	offset := after + 8

	cells := make([]string, 0, int(rows)*int(cols))
	for i := uint32(0); i < rows*cols; i++ {
		ptr, err := order.U32(buf, offset)
		if err != nil {
			return StringTable{}, core.Wrap(core.ZoneCorrupt, "stringtable: reading cell pointer", err)
		}
		offset += 4
		if ptr == ptrSentinel {
			cells = append(cells, "")
			continue
		}
		cell, cellEnd, err := byteio.CString(buf, int(ptr))
		if err != nil {
			return StringTable{}, core.Wrap(core.ZoneCorrupt, "stringtable: reading cell text", err)
		}
		cells = append(cells, cell)
		offset = max(offset, cellEnd)
	}

	return StringTable{
		span:  span{StartOffset: nameOffset, EndOffset: offset},
		Name:  name,
		Rows:  int(rows),
		Cols:  int(cols),
		Cells: cells,
	}, nil
}
