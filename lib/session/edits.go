package session

import (
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
)

// QueueRawFileEdit stages a content replacement for an existing raw file.
// The raw file must already have been parsed by Open; this call does not
// create new raw files (that requires a rebuild via the zone builder).
func (s *Session) QueueRawFileEdit(name string, newContent []byte) error {
	rf, ok := s.FindRawFile(name)
	if !ok {
		return core.NewError(core.ZoneCorrupt, "no such raw file: "+name)
	}
	s.pendingEdits = append(s.pendingEdits, patch.Edit{
		Kind:       core.EditRawFile,
		RawFile:    rf,
		NewContent: newContent,
	})
	return nil
}

// QueueLocalizeEdit stages a text replacement for an existing localize key.
func (s *Session) QueueLocalizeEdit(key, newText string) error {
	l, ok := s.FindLocalize(key)
	if !ok {
		return core.NewError(core.ZoneCorrupt, "no such localize key: "+key)
	}
	s.pendingEdits = append(s.pendingEdits, patch.Edit{
		Kind:     core.EditLocalize,
		Localize: l,
		NewText:  newText,
	})
	return nil
}

// QueueNewLocalize stages a brand-new localize entry. Since the pool has no
// free slot for it, any save touching this session will require a rebuild.
func (s *Session) QueueNewLocalize(key, text string) {
	s.newLocalizes = append(s.newLocalizes, assets.Localize{Key: key, Text: text})
}

// QueueWeaponEdit stages a single numeric field change on a weapon record.
func (s *Session) QueueWeaponEdit(name, fieldName string, newValue uint32) error {
	w, ok := s.FindWeapon(name)
	if !ok {
		return core.NewError(core.ZoneCorrupt, "no such weapon: "+name)
	}
	s.pendingEdits = append(s.pendingEdits, patch.Edit{
		Kind:      core.EditWeapon,
		Weapon:    w,
		FieldName: fieldName,
		NewValue:  newValue,
	})
	return nil
}

// QueueMenuStringEdit stages a replacement for one extracted string inside
// a parsed menu.
func (s *Session) QueueMenuStringEdit(menuList assets.MenuList, menu assets.Menu, slot assets.ExtractedString, newValue string) {
	s.pendingEdits = append(s.pendingEdits, patch.Edit{
		Kind:           core.EditMenuString,
		Menu:           menu,
		StringEdit:     &slot,
		NewStringValue: newValue,
	})
}

// QueueMenuValueEdit stages a replacement for one scalar slot inside a
// parsed menu.
func (s *Session) QueueMenuValueEdit(menu assets.Menu, slot assets.EditableValue, newValue float32) {
	s.pendingEdits = append(s.pendingEdits, patch.Edit{
		Kind:           core.EditMenuValue,
		Menu:           menu,
		ValueEdit:      &slot,
		NewScalarValue: newValue,
	})
}

// PendingEdits reports how many in-place edits are currently queued.
func (s *Session) PendingEdits() int {
	return len(s.pendingEdits)
}

// PendingNewLocalizes reports how many brand-new localize entries are
// currently queued; their presence alone forces a rebuild.
func (s *Session) PendingNewLocalizes() int {
	return len(s.newLocalizes)
}
