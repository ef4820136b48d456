package session

import (
	"bytes"
	"testing"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
	"github.com/sargunv/fastfile-tools/lib/zone"
)

// newTestSession builds a Session around a single raw file directly,
// bypassing Open's byte-level parsing (covered by the assets and zone
// packages' own tests) so the orchestrator logic in Save/TransferSpace can
// be exercised on its own.
func newTestSession(content string, maxSize uint32) *Session {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformPS3, Signed: core.Unsigned}
	zoneBytes := make([]byte, 0x200)
	dataOffset := 0x40
	copy(zoneBytes[dataOffset:], content)

	return &Session{
		Variant: variant,
		Order:   byteio.OrderFor(variant.Platform),
		Zone:    zoneBytes,
		RawFiles: []assets.RawFile{
			{Name: "maps/_load.gsc", MaxSize: maxSize, DataOffset: dataOffset, Content: []byte(content)},
		},
	}
}

func TestSaveInPlaceWhenEditFits(t *testing.T) {
	s := newTestSession("old content", 64)
	if err := s.QueueRawFileEdit("maps/_load.gsc", []byte("new content")); err != nil {
		t.Fatalf("QueueRawFileEdit: %v", err)
	}

	report, out, err := s.Save(SaveOptions{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if report.Rebuilt {
		t.Fatal("expected in-place save, got a rebuild")
	}
	if report.EditsApplied != 1 {
		t.Fatalf("expected 1 edit applied, got %d", report.EditsApplied)
	}
	hdr, err := container.DetectVariant(out)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	savedZone, _, err := container.Decompress(out, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Contains(savedZone, []byte("new content")) {
		t.Fatal("expected new content in the recompressed output")
	}
	if s.PendingEdits() != 0 {
		t.Fatal("expected pending edits to be cleared after save")
	}
}

func TestSaveRebuildsWhenEditTooLarge(t *testing.T) {
	s := newTestSession("short", 8)
	if err := s.QueueRawFileEdit("maps/_load.gsc", []byte("this content is far too long to fit")); err != nil {
		t.Fatalf("QueueRawFileEdit: %v", err)
	}

	report, _, err := s.Save(SaveOptions{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !report.Rebuilt {
		t.Fatal("expected a rebuild when an edit exceeds its slot")
	}
}

func TestSaveRefusesRebuildWithUnparsedAssets(t *testing.T) {
	s := newTestSession("short", 8)
	s.UnparsedAssets = []UnparsedAsset{{PoolOffset: 0x100, TypeID: 0x02, Kind: zone.KindWeapon}}
	if err := s.QueueRawFileEdit("maps/_load.gsc", []byte("this content is far too long to fit")); err != nil {
		t.Fatalf("QueueRawFileEdit: %v", err)
	}

	_, _, err := s.Save(SaveOptions{})
	if err == nil {
		t.Fatal("expected Save to refuse a silent rebuild with unparsed assets present")
	}
	ce, ok := err.(*core.Error)
	if !ok || ce.Kind != core.RebuildNeeded {
		t.Fatalf("expected a RebuildNeeded error, got %v", err)
	}
}

func TestSaveRebuildsOnConfirmationWithUnparsedAssets(t *testing.T) {
	s := newTestSession("short", 8)
	s.UnparsedAssets = []UnparsedAsset{{PoolOffset: 0x100, TypeID: 0x02, Kind: zone.KindWeapon}}
	if err := s.QueueRawFileEdit("maps/_load.gsc", []byte("this content is far too long to fit")); err != nil {
		t.Fatalf("QueueRawFileEdit: %v", err)
	}

	report, _, err := s.Save(SaveOptions{RebuildOnFail: true})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !report.Rebuilt {
		t.Fatal("expected a rebuild on confirmation")
	}
	found := false
	for _, k := range report.DroppedKinds {
		if k == zone.KindWeapon {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the unparsed weapon kind to be reported as dropped")
	}
}

func TestSaveNewLocalizeForcesRebuild(t *testing.T) {
	s := newTestSession("short", 64)
	s.QueueNewLocalize("NEW_KEY", "new text")

	report, _, err := s.Save(SaveOptions{})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !report.Rebuilt {
		t.Fatal("expected a new localize entry to force a rebuild even with no other edits")
	}
}

func TestTransferSpaceInPlace(t *testing.T) {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformPS3, Signed: core.Unsigned}
	zoneBytes := make([]byte, 0x200)
	donor := assets.RawFile{Name: "donor.gsc", MaxSize: 0x40, DataOffset: 0x40, Content: []byte("donor")}
	recipient := assets.RawFile{Name: "recipient.gsc", MaxSize: 0x10, DataOffset: 0x90, Content: []byte("recipient")}

	s := &Session{
		Variant:  variant,
		Order:    byteio.OrderFor(variant.Platform),
		Zone:     zoneBytes,
		RawFiles: []assets.RawFile{donor, recipient},
	}

	result, out, err := s.TransferSpace("donor.gsc", "recipient.gsc", 0x10, patch.TransferInPlace, SaveOptions{})
	if err != nil {
		t.Fatalf("TransferSpace: %v", err)
	}
	if result.DonorMaxSize != 0x30 || result.RecipientMaxSize != 0x20 {
		t.Fatalf("unexpected transfer result: %+v", result)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty recompressed output")
	}
}

func TestTransferSpaceRebuildRefusesWithUnparsedAssets(t *testing.T) {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformPS3, Signed: core.Unsigned}
	s := &Session{
		Variant: variant,
		Order:   byteio.OrderFor(variant.Platform),
		Zone:    make([]byte, 0x200),
		RawFiles: []assets.RawFile{
			{Name: "donor.gsc", MaxSize: 0x40, DataOffset: 0x40, Content: []byte("donor")},
			{Name: "recipient.gsc", MaxSize: 0x10, DataOffset: 0x90, Content: []byte("recipient")},
		},
		UnparsedAssets: []UnparsedAsset{{PoolOffset: 0x100, TypeID: 0x02, Kind: zone.KindWeapon}},
	}

	_, _, err := s.TransferSpace("donor.gsc", "recipient.gsc", 0x10, patch.TransferRebuild, SaveOptions{})
	if err == nil {
		t.Fatal("expected TransferSpace to refuse a silent rebuild with unparsed assets present")
	}
}

func TestFindRawFileAndExtract(t *testing.T) {
	s := newTestSession("content", 64)
	if _, ok := s.FindRawFile("maps/_load.gsc"); !ok {
		t.Fatal("expected to find the raw file by name")
	}
	if _, ok := s.FindRawFile("does/not/exist.gsc"); ok {
		t.Fatal("expected no match for an unknown name")
	}
	if len(s.ExtractRawFiles()) != 1 {
		t.Fatal("expected ExtractRawFiles to return the one parsed raw file")
	}
}
