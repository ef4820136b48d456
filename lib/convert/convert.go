// Package convert implements the cross-platform converter: given a
// container for one (game, platform) combination, it produces the
// equivalent container for another platform of the same game by patching
// the zone header's fingerprint, re-numbering the asset-pool type IDs, and
// rewriting platform-specific name references, then recompressing.
package convert

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/zone"
)

// Options configures a single conversion.
type Options struct {
	TargetPlatform core.Platform
	TargetSigned   core.Signing
	// Names is the substitution table for platform-specific asset name
	// references. The zero value uses only the built-in table.
	Names NameTable
}

// Report summarizes what a conversion did, for the client to display.
type Report struct {
	SourceVariant  core.Variant
	TargetVariant  core.Variant
	RecordsShifted int
	NamesReplaced  int
}

// Convert reads a container file's bytes, converts it to opts.TargetPlatform
// (keeping the source game), and returns the new container bytes.
func Convert(data []byte, opts Options) ([]byte, Report, error) {
	hdr, err := container.DetectVariant(data)
	if err != nil {
		return nil, Report{}, err
	}
	source := hdr.Variant
	target := core.Variant{Game: source.Game, Platform: opts.TargetPlatform, Signed: opts.TargetSigned}

	targetFP, ok := core.FingerprintFor(target)
	if !ok {
		return nil, Report{}, core.NewError(core.UnsupportedVariant, "no known fingerprint for "+target.String())
	}

	zoneBytes, prelude, err := container.Decompress(data, hdr)
	if err != nil {
		return nil, Report{}, err
	}

	sourceOrder := byteio.OrderFor(source.Platform)
	targetOrder := byteio.OrderFor(target.Platform)

	h, err := zone.ParseHeader(zoneBytes, sourceOrder)
	if err != nil {
		return nil, Report{}, err
	}

	h.BlockSizeTemp = targetFP.BlockSizeTemp
	h.BlockSizeVertex = targetFP.BlockSizeVertex
	swapVirtualCallback(&h, target.Platform)

	if err := h.Put(zoneBytes, targetOrder); err != nil {
		return nil, Report{}, err
	}

	shifted := 0
	if source.Game != core.Game3 {
		shifted, err = shiftAssetTypeIDs(zoneBytes, h, source.Platform, target.Platform)
		if err != nil {
			return nil, Report{}, err
		}
	}

	replaced, err := replaceNameReferences(zoneBytes, opts.Names, source.Platform, target.Platform)
	if err != nil {
		return nil, Report{}, err
	}

	out, err := container.Compress(zoneBytes, target, prelude, nil)
	if err != nil {
		return nil, Report{}, err
	}

	return out, Report{
		SourceVariant:  source,
		TargetVariant:  target,
		RecordsShifted: shifted,
		NamesReplaced:  replaced,
	}, nil
}

// expectsVirtualNonzero reports which of BlockSizeVirtual/BlockSizeCallback
// a platform expects to carry the nonzero value; the other slot is zero.
// PC carries it in BlockSizeVirtual, every console in BlockSizeCallback.
func expectsVirtualNonzero(p core.Platform) bool {
	return p == core.PlatformPC
}

// swapVirtualCallback moves the nonzero value between BlockSizeVirtual and
// BlockSizeCallback so it lands in the slot target expects, leaving the
// pair untouched if it already matches or if both (or neither) are zero.
func swapVirtualCallback(h *zone.Header, target core.Platform) {
	wantVirtual := expectsVirtualNonzero(target)
	switch {
	case wantVirtual && h.BlockSizeVirtual == 0 && h.BlockSizeCallback != 0:
		h.BlockSizeVirtual, h.BlockSizeCallback = h.BlockSizeCallback, h.BlockSizeVirtual
	case !wantVirtual && h.BlockSizeCallback == 0 && h.BlockSizeVirtual != 0:
		h.BlockSizeVirtual, h.BlockSizeCallback = h.BlockSizeCallback, h.BlockSizeVirtual
	}
}

// shiftAssetTypeIDs locates the asset pool and rewrites every record's type
// ID from source's on-disk numbering to target's, via the shared canonical
// (full-table) numbering. Ptr words are always the inline sentinel and are
// untouched. Returns how many records had their type ID actually change.
func shiftAssetTypeIDs(zoneBytes []byte, h zone.Header, source, target core.Platform) (int, error) {
	sourceOrder := byteio.OrderFor(source)
	records, err := zone.FindPool(zoneBytes, h, sourceOrder, zone.HeaderSize, source)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, rec := range records {
		canonical := zone.CanonicalTypeID(rec.TypeID, source)
		newID := zone.PlatformTypeID(canonical, target)
		if newID == rec.TypeID {
			continue
		}
		if err := byteio.BigEndian.PutU32(zoneBytes, rec.PoolOffset, newID); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// replaceNameReferences scans the whole zone buffer for every key in the
// direction appropriate to source -> target and overwrites matches with
// their replacement, right-padded with 0x00 to the original key's length.
// A replacement longer than its key cannot be written in place: such an
// entry is skipped when its key does not occur, and fails with ZoneCorrupt
// when it does. If no name table applies to this platform pair (e.g. either
// side is PC or Wii), it is a no-op.
func replaceNameReferences(zoneBytes []byte, table NameTable, source, target core.Platform) (int, error) {
	entries, ok := table.direction(source, target)
	if !ok {
		return 0, nil
	}

	replaced := 0
	for _, e := range sortedEntries(entries) {
		key := []byte(e.From)
		if len(e.To) > len(key) {
			if byteio.FindPattern(zoneBytes, 0, key) < 0 {
				continue
			}
			return replaced, core.NewError(core.ZoneCorrupt, "name replacement "+e.To+" longer than "+e.From)
		}
		val := make([]byte, len(key))
		copy(val, []byte(e.To))

		pos := 0
		for {
			idx := byteio.FindPattern(zoneBytes, pos, key)
			if idx < 0 {
				break
			}
			copy(zoneBytes[idx:idx+len(key)], val)
			pos = idx + len(key)
			replaced++
		}
	}
	return replaced, nil
}

// nameEntry pairs one substitution key with its replacement.
type nameEntry struct {
	From, To string
}

// sortedEntries returns a deterministic ordering of table so conversion
// output (and the replaced count) does not depend on Go's randomized map
// iteration.
func sortedEntries(table map[string]string) []nameEntry {
	entries := make([]nameEntry, 0, len(table))
	for k, v := range table {
		entries = append(entries, nameEntry{From: k, To: v})
	}
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].From < entries[j-1].From; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries
}
