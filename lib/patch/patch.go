// Package patch implements the in-place zone patcher and the donor to
// recipient space-transfer protocol: mutations that never shift any
// existing asset's byte offsets.
package patch

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// Edit is one pending change, tagged with the kind of asset it targets.
// Exactly one of the Raw/Localize/Weapon/Menu fields is set, matching Kind.
type Edit struct {
	Kind core.EditKind

	RawFile    assets.RawFile
	NewContent []byte

	Localize assets.Localize
	NewText  string

	Weapon    assets.Weapon
	FieldName string
	NewValue  uint32

	Menu           assets.Menu
	StringEdit     *assets.ExtractedString
	NewStringValue string
	ValueEdit      *assets.EditableValue
	NewScalarValue float32
}

// Check reports whether applying e to buf would violate its size
// condition, without writing anything. It mirrors the size checks each
// Patch method performs, so the orchestrator can decide in-place vs.
// rebuild before committing any bytes.
func (e Edit) Check() error {
	switch e.Kind {
	case core.EditRawFile:
		if uint32(len(e.NewContent)) > e.RawFile.MaxSize {
			return core.NewError(core.EditTooLarge, "rawfile edit exceeds MaxSize")
		}
	case core.EditLocalize:
		if e.Localize.Case == assets.LocalizeCaseA && len(e.NewText)+1 > e.Localize.TextAreaSize() {
			return core.NewError(core.EditTooLarge, "localize edit exceeds text_area_size")
		}
		if e.Localize.Case == assets.LocalizeCaseB && e.NewText != "" {
			return core.NewError(core.EditTooLarge, "localize: case B entries have no text region")
		}
	}
	return nil
}

// Apply applies every edit to buf. It checks all edits before writing any
// of them: if any edit would violate its size condition, Apply returns a
// RebuildNeeded error wrapping that edit's size error and leaves buf
// untouched.
func Apply(buf []byte, order byteio.Order, edits []Edit) error {
	for _, e := range edits {
		if err := e.Check(); err != nil {
			return core.Wrap(core.RebuildNeeded, "edit requires a rebuild", err)
		}
	}

	for _, e := range edits {
		if err := applyOne(buf, order, e); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(buf []byte, order byteio.Order, e Edit) error {
	switch e.Kind {
	case core.EditRawFile:
		return e.RawFile.Patch(buf, e.NewContent)
	case core.EditLocalize:
		return e.Localize.Patch(buf, e.NewText)
	case core.EditWeapon:
		return e.Weapon.Patch(buf, e.FieldName, e.NewValue)
	case core.EditMenuString:
		if e.StringEdit == nil {
			return core.NewError(core.ZoneCorrupt, "menu string edit missing its slot")
		}
		return e.Menu.PatchString(buf, *e.StringEdit, e.NewStringValue)
	case core.EditMenuValue:
		if e.ValueEdit == nil {
			return core.NewError(core.ZoneCorrupt, "menu value edit missing its slot")
		}
		return e.Menu.PatchValue(buf, order, *e.ValueEdit, e.NewScalarValue)
	default:
		return core.NewError(core.ZoneCorrupt, "unknown edit kind")
	}
}
