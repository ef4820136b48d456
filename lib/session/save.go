package session

import (
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
	"github.com/sargunv/fastfile-tools/lib/zone"
	"github.com/sargunv/fastfile-tools/lib/zonebuild"
)

// SaveOptions configures a save. RebuildOnFail confirms a rebuild the
// orchestrator would otherwise refuse because unparsed assets are present
// and would be dropped.
type SaveOptions struct {
	RebuildOnFail bool
}

// SaveReport summarizes what Save actually did.
type SaveReport struct {
	Rebuilt      bool
	EditsApplied int
	DroppedKinds []zone.Kind
}

// Save commits every queued edit. It applies in place when every queued
// edit fits its existing slot and no new localize entries are pending;
// otherwise it rebuilds the zone from scratch via the zone builder, which
// only knows raw files and localize entries, so every other parsed kind
// (string tables, menus, tech sets, anims, weapons, images) is dropped
// from the rebuilt output. A rebuild that would drop assets this session
// never even got to parse (UnparsedAssets) is refused unless
// opts.RebuildOnFail confirms it.
func (s *Session) Save(opts SaveOptions) (SaveReport, []byte, error) {
	needsRebuild := len(s.newLocalizes) > 0
	for _, e := range s.pendingEdits {
		if err := e.Check(); err != nil {
			needsRebuild = true
			break
		}
	}

	if !needsRebuild {
		if err := patch.Apply(s.Zone, s.Order, s.pendingEdits); err != nil {
			return SaveReport{}, nil, err
		}
		out, err := container.Compress(s.Zone, s.Variant, s.Prelude, s.SignedExtra)
		if err != nil {
			return SaveReport{}, nil, err
		}
		applied := len(s.pendingEdits)
		s.pendingEdits = nil
		return SaveReport{Rebuilt: false, EditsApplied: applied}, out, nil
	}

	if len(s.UnparsedAssets) > 0 && !opts.RebuildOnFail {
		return SaveReport{}, nil, core.NewError(core.RebuildNeeded,
			"rebuild required but would drop unparsed assets; confirm with RebuildOnFail")
	}

	out, dropped, err := s.rebuild()
	if err != nil {
		return SaveReport{}, nil, err
	}
	applied := len(s.pendingEdits) + len(s.newLocalizes)
	s.pendingEdits = nil
	s.newLocalizes = nil
	return SaveReport{Rebuilt: true, EditsApplied: applied, DroppedKinds: dropped}, out, nil
}

// rebuild regenerates the zone from this session's raw files and localize
// entries, folding in queued edits, and recompresses it for s.Variant.
// It reports every asset kind present in the original that the zone
// builder's raw+localize-only scope cannot carry forward.
func (s *Session) rebuild() ([]byte, []zone.Kind, error) {
	return s.rebuildWithSlotSizes("", 0, "", 0)
}

// rebuildWithSlotSizes is rebuild, but overrides the MaxSize of up to two
// named raw files (donor/recipient of a transfer rebuild); a zero size
// leaves that raw file's MaxSize untouched.
func (s *Session) rebuildWithSlotSizes(nameA string, sizeA uint32, nameB string, sizeB uint32) ([]byte, []zone.Kind, error) {
	rawInputs := make([]zonebuild.RawFileInput, 0, len(s.RawFiles))
	for _, rf := range s.RawFiles {
		content := rf.Content
		maxSize := rf.MaxSize
		for _, e := range s.pendingEdits {
			if e.Kind == core.EditRawFile && e.RawFile.Name == rf.Name {
				content = e.NewContent
				if uint32(len(content)) > maxSize {
					maxSize = uint32(len(content))
				}
			}
		}
		switch rf.Name {
		case nameA:
			if sizeA != 0 {
				maxSize = sizeA
			}
		case nameB:
			if sizeB != 0 {
				maxSize = sizeB
			}
		}
		rawInputs = append(rawInputs, zonebuild.RawFileInput{Name: rf.Name, Content: content, MaxSize: maxSize})
	}

	locInputs := make([]zonebuild.LocalizeInput, 0, len(s.Localizes)+len(s.newLocalizes))
	for _, l := range s.Localizes {
		text := l.Text
		for _, e := range s.pendingEdits {
			if e.Kind == core.EditLocalize && e.Localize.Key == l.Key {
				text = e.NewText
			}
		}
		locInputs = append(locInputs, zonebuild.LocalizeInput{Key: l.Key, Text: text})
	}
	for _, l := range s.newLocalizes {
		locInputs = append(locInputs, zonebuild.LocalizeInput{Key: l.Key, Text: l.Text})
	}

	zoneBytes, err := zonebuild.Build(s.Variant, s.zoneName, rawInputs, locInputs)
	if err != nil {
		return nil, nil, err
	}

	out, err := container.Compress(zoneBytes, s.Variant, s.Prelude, s.SignedExtra)
	if err != nil {
		return nil, nil, err
	}

	return out, s.droppedKinds(), nil
}

// droppedKinds lists every kind this session holds parsed assets for that
// the zone builder cannot reproduce, plus every kind left unparsed.
func (s *Session) droppedKinds() []zone.Kind {
	var dropped []zone.Kind
	add := func(k zone.Kind, present bool) {
		if present {
			dropped = append(dropped, k)
		}
	}
	add(zone.KindStringTable, len(s.StringTables) > 0)
	add(zone.KindMenuList, len(s.MenuLists) > 0)
	add(zone.KindTechSet, len(s.TechSets) > 0)
	add(zone.KindXAnim, len(s.XAnims) > 0)
	add(zone.KindWeapon, len(s.Weapons) > 0)
	add(zone.KindImage, len(s.Images) > 0)
	for _, u := range s.UnparsedAssets {
		dropped = append(dropped, u.Kind)
	}
	return dropped
}
