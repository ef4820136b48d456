package convert

import (
	"bytes"
	"testing"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
)

func buildSignedZone(t *testing.T, order byteio.Order, typeIDs []byte) []byte {
	t.Helper()
	buf := make([]byte, 0x34)
	_ = order.PutU32(buf, 0x08, 0x10B0) // BlockSizeTemp, Xenon G2 fingerprint
	_ = order.PutU32(buf, 0x20, 0x0480) // BlockSizeVertex
	_ = order.PutU32(buf, 0x2C, uint32(len(typeIDs)))
	_ = order.PutU32(buf, 0x28, 0xFFFFFFFF)
	_ = order.PutU32(buf, 0x30, 0xFFFFFFFF)
	for _, id := range typeIDs {
		rec := make([]byte, 8)
		_ = byteio.BigEndian.PutU32(rec, 0, uint32(id))
		rec[4], rec[5], rec[6], rec[7] = 0xFF, 0xFF, 0xFF, 0xFF
		buf = append(buf, rec...)
	}
	// The signed-scan path only accepts a candidate stream whose decompressed
	// size exceeds 10 KiB, so pad well past that; the asset-pool scan never
	// looks past AssetCount records and ignores this trailing filler.
	return append(buf, make([]byte, 11*1024)...)
}

func TestConvertXenonSignedToPS3Unsigned(t *testing.T) {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformXenon, Signed: core.Signed}
	order := byteio.OrderFor(variant.Platform)
	zoneBytes := buildSignedZone(t, order, []byte{0x04, 0x08, 0x09, 0x0A, 0x24})

	file, err := container.Compress(zoneBytes, variant, nil, &container.SignedExtra{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	out, report, err := Convert(file, Options{TargetPlatform: core.PlatformPS3, TargetSigned: core.Unsigned})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !bytes.HasPrefix(out, []byte(container.MagicUnsigned)) {
		t.Fatalf("expected unsigned magic, got %q", out[:8])
	}
	gotVersion, err := byteio.BigEndian.U32(out, 8)
	if err != nil || gotVersion != 0x00000183 {
		t.Fatalf("expected version 0x183, got %#x (err %v)", gotVersion, err)
	}

	hdr, err := container.DetectVariant(out)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	gotZone, _, err := container.Decompress(out, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	targetOrder := byteio.OrderFor(core.PlatformPS3)
	gotTemp, err := targetOrder.U32(gotZone, 0x08)
	if err != nil || gotTemp != 0x10B0 {
		t.Fatalf("expected BlockSizeTemp 0x10B0, got %#x", gotTemp)
	}

	for i, id := range []byte{0x04, 0x08, 0x09, 0x0A, 0x24} {
		off := 0x34 + i*8
		got, err := byteio.BigEndian.U32(gotZone, off)
		if err != nil {
			t.Fatalf("reading record %d: %v", i, err)
		}
		want := uint32(id)
		if id >= 0x08 {
			want++
		}
		if got != want {
			t.Fatalf("record %d: type %#x shifted to %#x, want %#x", i, id, got, want)
		}
	}

	if report.RecordsShifted != 4 {
		t.Fatalf("expected 4 records shifted (ids >= 0x08), got %d", report.RecordsShifted)
	}
	if report.TargetVariant.Platform != core.PlatformPS3 || report.TargetVariant.Signed != core.Unsigned {
		t.Fatalf("unexpected target variant in report: %+v", report.TargetVariant)
	}
}

func TestNameTableReplacesAndPads(t *testing.T) {
	table := NewNameTable(map[string]string{"xenon_hud": "ps3_x"})
	zoneBytes := []byte("prefix xenon_hud suffix xenon_hud\x00")
	replaced, err := replaceNameReferences(zoneBytes, table, core.PlatformXenon, core.PlatformPS3)
	if err != nil {
		t.Fatalf("replaceNameReferences: %v", err)
	}
	if replaced != 2 {
		t.Fatalf("expected 2 replacements, got %d", replaced)
	}
	want := "prefix ps3_x\x00\x00\x00\x00 suffix ps3_x\x00\x00\x00\x00\x00"
	if string(zoneBytes) != want {
		t.Fatalf("got %q, want %q", zoneBytes, want)
	}
}

func TestNameTablePassthroughForUnrelatedPlatforms(t *testing.T) {
	table := NewNameTable(nil)
	zoneBytes := []byte("xenon_hud")
	orig := append([]byte(nil), zoneBytes...)
	replaced, err := replaceNameReferences(zoneBytes, table, core.PlatformPC, core.PlatformWii)
	if err != nil {
		t.Fatalf("replaceNameReferences: %v", err)
	}
	if replaced != 0 || !bytes.Equal(zoneBytes, orig) {
		t.Fatal("expected no-op for a platform pair with no name table")
	}
}
