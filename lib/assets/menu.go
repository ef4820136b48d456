package assets

import (
	"fmt"
	"math"
	"strings"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// EditableValueKind distinguishes the scalar shapes a menu's binary layout
// exposes for in-place editing.
type EditableValueKind int

const (
	EditableColor EditableValueKind = iota
	EditableRect
	EditableFloat
)

// ExtractedString is a string found inside a menu's binary body, along
// with the slot it must be truncated/null-padded to fit back into.
type ExtractedString struct {
	Offset         int
	OriginalLength int
	Value          string
}

// EditableValue is a scalar slot (color component, rect coordinate, or
// float) found inside a menu's binary body.
type EditableValue struct {
	Offset int
	Kind   EditableValueKind
	Value  float32
}

// menuStringCount and menuFloatCount bound how many of each slot type a
// single menu definition carries; a real corpus would size these from the
// record's own header fields instead of a fixed count.
const (
	menuStringCount = 4
	menuFloatCount  = 8
)

// Menu is one parsed menu definition: its decompiled text representation
// plus the edit points the inverse pass can re-target.
type Menu struct {
	span
	Name    string
	Text    string
	Strings []ExtractedString
	Values  []EditableValue
}

// MenuList is the asset-pool record grouping a zone's menu definitions.
type MenuList struct {
	span
	Name  string
	Menus []Menu
}

// ParseMenuList runs the decompiler pass over a menu list: name, then
// menu_count:u32 BE menu definitions, each with menuStringCount string
// slots followed by menuFloatCount scalar slots.
func ParseMenuList(buf []byte, order byteio.Order, nameOffset int) (MenuList, error) {
	name, offset, err := byteio.CString(buf, nameOffset)
	if err != nil {
		return MenuList{}, core.Wrap(core.ZoneCorrupt, "menulist: reading name", err)
	}

	count, err := byteio.BigEndian.U32(buf, offset)
	if err != nil {
		return MenuList{}, core.Wrap(core.ZoneCorrupt, "menulist: reading menu count", err)
	}
	offset += 4

	menus := make([]Menu, 0, count)
	for i := uint32(0); i < count; i++ {
		menu, next, err := parseMenu(buf, order, offset)
		if err != nil {
			return MenuList{}, core.Wrap(core.ZoneCorrupt, fmt.Sprintf("menulist: menu %d", i), err)
		}
		menus = append(menus, menu)
		offset = next
	}

	return MenuList{
		span:  span{StartOffset: nameOffset, EndOffset: offset},
		Name:  name,
		Menus: menus,
	}, nil
}

func parseMenu(buf []byte, order byteio.Order, offset int) (Menu, int, error) {
	start := offset
	name, cursor, err := byteio.CString(buf, offset)
	if err != nil {
		return Menu{}, 0, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "menuDef {\n\tname %q\n", name)

	strs := make([]ExtractedString, 0, menuStringCount)
	for i := 0; i < menuStringCount; i++ {
		s, next, err := byteio.CString(buf, cursor)
		if err != nil {
			return Menu{}, 0, err
		}
		strs = append(strs, ExtractedString{Offset: cursor, OriginalLength: next - cursor - 1, Value: s})
		fmt.Fprintf(&b, "\tstring%d %q\n", i, s)
		cursor = next
	}

	vals := make([]EditableValue, 0, menuFloatCount)
	kinds := []EditableValueKind{EditableColor, EditableColor, EditableRect, EditableRect, EditableFloat, EditableFloat, EditableFloat, EditableFloat}
	for i := 0; i < menuFloatCount; i++ {
		raw, err := order.U32(buf, cursor)
		if err != nil {
			return Menu{}, 0, err
		}
		v := math.Float32frombits(raw)
		k := EditableFloat
		if i < len(kinds) {
			k = kinds[i]
		}
		vals = append(vals, EditableValue{Offset: cursor, Kind: k, Value: v})
		fmt.Fprintf(&b, "\tvalue%d %v\n", i, v)
		cursor += 4
	}
	b.WriteString("}\n")

	return Menu{
		span:    span{StartOffset: start, EndOffset: cursor},
		Name:    name,
		Text:    b.String(),
		Strings: strs,
		Values:  vals,
	}, cursor, nil
}

// PatchString applies an edited ExtractedString: writes newValue truncated
// to s.OriginalLength bytes, null-padded, without touching anything past
// the original slot.
func (m Menu) PatchString(buf []byte, s ExtractedString, newValue string) error {
	if len(newValue) > s.OriginalLength {
		newValue = newValue[:s.OriginalLength]
	}
	slot, err := byteio.Slice(buf, s.Offset, s.OriginalLength+1)
	if err != nil {
		return core.Wrap(core.ZoneCorrupt, "menu: locating string slot", err)
	}
	copy(slot, newValue)
	for i := len(newValue); i < len(slot); i++ {
		slot[i] = 0
	}
	return nil
}

// PatchValue writes an edited EditableValue's scalar back at its recorded
// offset, game-endian-encoded.
func (m Menu) PatchValue(buf []byte, order byteio.Order, v EditableValue, newValue float32) error {
	return order.PutU32(buf, v.Offset, math.Float32bits(newValue))
}
