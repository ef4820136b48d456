// Package session implements the public orchestration API: opening a
// container into parsed assets, queuing edits, and saving them back via
// the in-place patcher or a full rebuild, per the save orchestrator's
// edit-kind classification.
package session

import (
	"fmt"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
	"github.com/sargunv/fastfile-tools/lib/zone"
)

// ParseWarning records a single asset record whose body a parser recognized
// the kind of but failed to decode. Unlike UnparsedAsset, the kind is
// known; only this one body was corrupt. A weapon record parsed with a
// non-zero alignment adjust (its leading 0xFF run) is also recorded here,
// with the weapon itself still added to Session.Weapons.
type ParseWarning struct {
	PoolOffset int
	TypeID     uint32
	Kind       zone.Kind
	Err        error
}

// UnparsedAsset records a pool entry this core left untouched: either its
// kind has no parser, or a parse failure meant the sequential body walk
// could no longer locate where the next asset begins. Every record from
// this point forward in the pool is also unparsed, for the same reason.
type UnparsedAsset struct {
	PoolOffset int
	TypeID     uint32
	Kind       zone.Kind
}

// Session is one open FastFile: its container framing, the decompressed
// zone buffer, and every asset this core was able to parse from it.
type Session struct {
	Variant core.Variant
	Order   byteio.Order
	Zone    []byte
	Header  zone.Header
	Records []zone.Record

	Prelude     *container.G3Prelude
	SignedExtra *container.SignedExtra

	RawFiles     []assets.RawFile
	Localizes    []assets.Localize
	StringTables []assets.StringTable
	MenuLists    []assets.MenuList
	TechSets     []assets.TechSet
	XAnims       []assets.XAnim
	Weapons      []assets.Weapon
	Images       []assets.Image

	Warnings       []ParseWarning
	UnparsedAssets []UnparsedAsset

	pendingEdits []patch.Edit
	newLocalizes []assets.Localize
	zoneName     string
}

// Open detects the container variant, decompresses it, locates the asset
// pool, and parses every record it understands, in pool order.
func Open(data []byte) (*Session, error) {
	hdr, err := container.DetectVariant(data)
	if err != nil {
		return nil, err
	}

	zoneBytes, prelude, err := container.Decompress(data, hdr)
	if err != nil {
		return nil, err
	}

	order := byteio.OrderFor(hdr.Variant.Platform)
	h, err := zone.ParseHeader(zoneBytes, order)
	if err != nil {
		return nil, err
	}

	records, err := zone.FindPool(zoneBytes, h, order, zone.HeaderSize, hdr.Variant.Platform)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Variant: hdr.Variant,
		Order:   order,
		Zone:    zoneBytes,
		Header:  h,
		Records: records,
		Prelude: prelude,
	}
	s.parseBodies()
	return s, nil
}

// localizeMarkerSize mirrors assets.ParseLocalize's leading marker width;
// the session's sequential walk must skip it before calling the parser,
// since ParseLocalize expects recordStart to be the offset just past it.
const localizeMarkerSize = 8

// parseBodies walks the asset pool in order, maintaining a cursor into the
// zone buffer's body region. Each kind's parser either consumes a known
// span (advancing the cursor past it) or, for RawFile, scans forward from
// the cursor to locate its own start. The pool's final record is always
// the builder's terminator (AssetCount = rawfiles + localizes + 1) and
// carries no body of its own, so it is never parsed. The first body this
// core cannot decode -- an unknown kind, or a kind whose parse failed --
// ends the walk: without that body's true length, the cursor can no
// longer be trusted to locate anything after it.
func (s *Session) parseBodies() {
	cursor := zone.HeaderSize + len(s.Records)*8

	for i, rec := range s.Records {
		if i == len(s.Records)-1 {
			break // terminator record, no body
		}

		switch rec.Kind {
		case zone.KindRawFile:
			rf, err := assets.ParseRawFile(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.RawFiles = append(s.RawFiles, rf)
			cursor = rf.EndOffset

		case zone.KindLocalize:
			l, err := assets.ParseLocalize(s.Zone, s.Order, cursor+localizeMarkerSize)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.Localizes = append(s.Localizes, l)
			cursor = l.EndOffset

		case zone.KindStringTable:
			st, err := assets.ParseStringTable(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.StringTables = append(s.StringTables, st)
			cursor = st.EndOffset

		case zone.KindMenuList:
			ml, err := assets.ParseMenuList(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.MenuLists = append(s.MenuLists, ml)
			cursor = ml.EndOffset

		case zone.KindTechSet:
			ts, err := assets.ParseTechSet(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.TechSets = append(s.TechSets, ts)
			cursor = ts.EndOffset

		case zone.KindXAnim:
			xa, err := assets.ParseXAnim(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.XAnims = append(s.XAnims, xa)
			cursor = xa.EndOffset

		case zone.KindWeapon:
			name, nameEnd, err := byteio.CString(s.Zone, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			w, err := assets.ParseWeapon(s.Zone, s.Order, name, nameEnd, s.Variant.Game, 0)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.Weapons = append(s.Weapons, w)
			if w.AlignmentAdjust != 0 {
				s.Warnings = append(s.Warnings, ParseWarning{
					PoolOffset: rec.PoolOffset,
					TypeID:     rec.TypeID,
					Kind:       rec.Kind,
					Err:        fmt.Errorf("weapon %q: leading 0xFF run, fields read with a %d-byte alignment adjust", name, w.AlignmentAdjust),
				})
			}
			cursor = w.EndOffset

		case zone.KindImage:
			img, err := assets.ParseImage(s.Zone, s.Order, cursor)
			if err != nil {
				s.recordFailure(i, rec, err)
				return
			}
			s.Images = append(s.Images, img)
			cursor = img.EndOffset

		default:
			s.markUnparsedFrom(i)
			return
		}
	}
}

func (s *Session) recordFailure(i int, rec zone.Record, err error) {
	s.Warnings = append(s.Warnings, ParseWarning{
		PoolOffset: rec.PoolOffset,
		TypeID:     rec.TypeID,
		Kind:       rec.Kind,
		Err:        err,
	})
	s.markUnparsedFrom(i)
}

// markUnparsedFrom records every record from i to the pool's end (minus
// the terminator) as unparsed, since the cursor is no longer trustworthy.
func (s *Session) markUnparsedFrom(i int) {
	for _, rec := range s.Records[i : len(s.Records)-1] {
		s.UnparsedAssets = append(s.UnparsedAssets, UnparsedAsset{
			PoolOffset: rec.PoolOffset,
			TypeID:     rec.TypeID,
			Kind:       rec.Kind,
		})
	}
}

// ExtractRawFiles returns every raw file this session parsed, with its
// in-game path and current content.
func (s *Session) ExtractRawFiles() []assets.RawFile {
	return append([]assets.RawFile(nil), s.RawFiles...)
}

// FindRawFile returns the parsed raw file with the given in-game name.
func (s *Session) FindRawFile(name string) (assets.RawFile, bool) {
	for _, rf := range s.RawFiles {
		if rf.Name == name {
			return rf, true
		}
	}
	return assets.RawFile{}, false
}

// FindLocalize returns the parsed localize entry with the given key.
func (s *Session) FindLocalize(key string) (assets.Localize, bool) {
	for _, l := range s.Localizes {
		if l.Key == key {
			return l, true
		}
	}
	return assets.Localize{}, false
}

// FindWeapon returns the parsed weapon record with the given name.
func (s *Session) FindWeapon(name string) (assets.Weapon, bool) {
	for _, w := range s.Weapons {
		if w.Name == name {
			return w, true
		}
	}
	return assets.Weapon{}, false
}
