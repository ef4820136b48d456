package zonebuild

import (
	"bytes"
	"testing"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/zone"
)

func TestBuildDeterministic(t *testing.T) {
	variant := core.Variant{Game: core.Game1, Platform: core.PlatformPC, Signed: core.Unsigned}
	raws := []RawFileInput{{Name: "/test.cfg", Content: []byte("hello\n")}}

	a, err := Build(variant, "testzone", raws, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(variant, "testzone", raws, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("Build is not deterministic for identical input")
	}
	if len(a)%chunkAlignment != 0 {
		t.Fatalf("expected output padded to a %d boundary, got len %d", chunkAlignment, len(a))
	}
}

func TestBuildCompressDecompressReparse(t *testing.T) {
	variant := core.Variant{Game: core.Game1, Platform: core.PlatformPC, Signed: core.Unsigned}
	raws := []RawFileInput{{Name: "/test.cfg", Content: []byte("hello\n")}}

	zoneBytes, err := Build(variant, "testzone", raws, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	file, err := container.Compress(zoneBytes, variant, nil, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr, err := container.DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	gotZone, _, err := container.Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(gotZone, zoneBytes) {
		t.Fatalf("zone round trip mismatch: got %d bytes, want %d", len(gotZone), len(zoneBytes))
	}

	order := byteio.OrderFor(variant.Platform)
	zh, err := zone.ParseHeader(gotZone, order)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if zh.AssetCount != 2 {
		t.Fatalf("expected AssetCount 2 (one raw + one terminator), got %d", zh.AssetCount)
	}

	records, err := zone.FindPool(gotZone, zh, order, 0, variant.Platform)
	if err != nil {
		t.Fatalf("FindPool: %v", err)
	}
	if len(records) != 2 || records[0].Kind != zone.KindRawFile {
		t.Fatalf("unexpected pool records: %+v", records)
	}

	searchFrom := bytes.Index(gotZone, []byte(".cfg"))
	rf, err := assets.ParseRawFile(gotZone, order, searchFrom)
	if err != nil {
		t.Fatalf("ParseRawFile: %v", err)
	}
	if rf.Name != "/test.cfg" {
		t.Fatalf("unexpected name %q", rf.Name)
	}
	if string(rf.Content) != "hello\n" {
		t.Fatalf("unexpected content %q", rf.Content)
	}
}
