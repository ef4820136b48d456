package container

import (
	"bytes"
	"testing"

	"github.com/sargunv/fastfile-tools/lib/core"
)

func TestRoundTripConsoleUnsigned(t *testing.T) {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformPS3, Signed: core.Unsigned}
	zone := bytes.Repeat([]byte("zone-bytes-for-round-trip-test-"), 4096) // > 64 KiB, exercises chunking

	file, err := Compress(zone, variant, nil, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	hdr, err := DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	if hdr.Variant.Game != variant.Game || hdr.Variant.Platform != variant.Platform {
		t.Fatalf("detected %+v, want game/platform from %+v", hdr.Variant, variant)
	}

	got, _, err := Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(zone))
	}
}

func TestRoundTripPC(t *testing.T) {
	variant := core.Variant{Game: core.Game1, Platform: core.PlatformPC, Signed: core.Unsigned}
	zone := []byte("small PC zone")

	file, err := Compress(zone, variant, nil, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr, err := DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	if hdr.Variant.Platform != core.PlatformPC {
		t.Fatalf("expected PC detection, got %v", hdr.Variant.Platform)
	}
	got, _, err := Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRoundTripWii(t *testing.T) {
	variant := core.Variant{Game: core.Game1, Platform: core.PlatformWii, Signed: core.Unsigned}
	zone := bytes.Repeat([]byte("wii-zone-data"), 1000)

	file, err := Compress(zone, variant, nil, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr, err := DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	got, _, err := Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRoundTripSigned(t *testing.T) {
	variant := core.Variant{Game: core.Game2, Platform: core.PlatformXenon, Signed: core.Signed}
	zone := bytes.Repeat([]byte("signed-zone-payload"), 2000)
	extra := &SignedExtra{HashTable: bytes.Repeat([]byte{0xAB}, HashTableSize)}

	file, err := Compress(zone, variant, nil, extra)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr, err := DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	if hdr.Variant.Signed != core.Signed {
		t.Fatalf("expected signed detection")
	}
	got, _, err := Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRoundTripG3Console(t *testing.T) {
	variant := core.Variant{Game: core.Game3, Platform: core.PlatformXenon, Signed: core.Unsigned}
	zone := bytes.Repeat([]byte("g3-console-zone"), 5000)
	prelude := &G3Prelude{
		AllowOnlineUpdate: 1,
		FileCreationTime:  0x1122334455667788,
		Region:            3,
		Entries:           bytes.Repeat([]byte{0x01}, g3PreludeEntrySize*2),
	}

	file, err := Compress(zone, variant, prelude, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr, err := DetectVariant(file)
	if err != nil {
		t.Fatalf("DetectVariant: %v", err)
	}
	got, gotPrelude, err := Decompress(file, hdr)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatalf("round trip mismatch")
	}
	if gotPrelude == nil {
		t.Fatal("expected a G3 prelude to be parsed back")
	}
	if gotPrelude.FileCreationTime != prelude.FileCreationTime || gotPrelude.Region != prelude.Region {
		t.Fatalf("prelude mismatch: got %+v, want fields from %+v", gotPrelude, prelude)
	}
	if !bytes.Equal(gotPrelude.Entries, prelude.Entries) {
		t.Fatalf("prelude entries mismatch")
	}
}

func TestDetectVariantRejectsBadMagic(t *testing.T) {
	_, err := DetectVariant([]byte("NOTAVALIDMAGIC12"))
	if err == nil {
		t.Fatal("expected error for invalid magic")
	}
}
