package assets

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// WeaponField names one editable scalar/enum slot in a weapon record, at a
// byte offset relative to the record's effective start (start_offset +
// alignment_adjust).
type WeaponField struct {
	Name   string
	Offset int
}

// weaponFieldTables enumerates the field layout per game; offsets from
// record start differ between games the way every other console/PC
// divergence in this format does.
var weaponFieldTables = map[core.Game][]WeaponField{
	core.Game1: {
		{"damage", 0x04}, {"fireDelay", 0x08}, {"clipSize", 0x0C}, {"reloadTime", 0x10},
		{"moveSpeedScale", 0x14}, {"ads", 0x18}, {"recoil", 0x1C}, {"penetrateType", 0x20},
	},
	core.Game2: {
		{"damage", 0x08}, {"fireDelay", 0x0C}, {"clipSize", 0x10}, {"reloadTime", 0x14},
		{"moveSpeedScale", 0x18}, {"ads", 0x1C}, {"recoil", 0x20}, {"penetrateType", 0x24},
	},
	core.Game3: {
		{"damage", 0x08}, {"fireDelay", 0x0C}, {"clipSize", 0x10}, {"reloadTime", 0x14},
		{"moveSpeedScale", 0x18}, {"ads", 0x1C}, {"recoil", 0x20}, {"penetrateType", 0x24},
		{"killstreakWeight", 0x28},
	},
}

// Weapon is a dense, per-game struct of editable fields. Values map is
// keyed by WeaponField.Name; every value is read/written as a u32 BE at
// the field's offset.
type Weapon struct {
	span
	Name            string
	Game            core.Game
	AlignmentAdjust int
	Values          map[string]uint32
}

// ParseWeapon samples the 6 bytes at recordStart to detect the leading
// 0xFF run that shifts every field by 2 bytes, then reads every field in
// the game's table at recordStart + alignment_adjust + field.Offset.
// nextStart, if > 0, clamps an overshooting end offset.
func ParseWeapon(buf []byte, order byteio.Order, name string, recordStart int, game core.Game, nextStart int) (Weapon, error) {
	adjust := 0
	if hasLeadingAlignmentRun(buf, recordStart) {
		adjust = 2
	}

	fields, ok := weaponFieldTables[game]
	if !ok {
		return Weapon{}, core.NewError(core.ZoneCorrupt, "weapon: no field table for this game")
	}

	values := make(map[string]uint32, len(fields))
	maxOffset := 0
	for _, f := range fields {
		at := recordStart + adjust + f.Offset
		v, err := byteio.BigEndian.U32(buf, at)
		if err != nil {
			return Weapon{}, core.Wrap(core.ZoneCorrupt, "weapon: reading field "+f.Name, err)
		}
		values[f.Name] = v
		if f.Offset+4 > maxOffset {
			maxOffset = f.Offset + 4
		}
	}

	end := recordStart + adjust + maxOffset
	end = clampEnd(end, nextStart)

	return Weapon{
		span:            span{StartOffset: recordStart, EndOffset: end},
		Name:            name,
		Game:            game,
		AlignmentAdjust: adjust,
		Values:          values,
	}, nil
}

// hasLeadingAlignmentRun reports whether the first six bytes at offset
// are all 0xFF, the signal for a 2-byte alignment_adjust.
func hasLeadingAlignmentRun(buf []byte, offset int) bool {
	run, err := byteio.Slice(buf, offset, 6)
	if err != nil {
		return false
	}
	for _, b := range run {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// Patch writes newValue as a u32 BE at the field's effective offset,
// bounds-checking against the buffer length.
func (w Weapon) Patch(buf []byte, fieldName string, newValue uint32) error {
	fields := weaponFieldTables[w.Game]
	for _, f := range fields {
		if f.Name != fieldName {
			continue
		}
		at := w.StartOffset + w.AlignmentAdjust + f.Offset
		if at+4 > len(buf) {
			return core.NewError(core.ZoneCorrupt, "weapon: field offset exceeds buffer length")
		}
		if err := byteio.BigEndian.PutU32(buf, at, newValue); err != nil {
			return core.Wrap(core.ZoneCorrupt, "weapon: writing field "+fieldName, err)
		}
		w.Values[fieldName] = newValue
		return nil
	}
	return core.NewError(core.ZoneCorrupt, "weapon: unknown field "+fieldName)
}
