package zone

import (
	"testing"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ZoneSize:          0x1000,
		ExternalSize:      0,
		BlockSizeTemp:     0x10B0,
		BlockSizePhysical: 0x20,
		BlockSizeRuntime:  0x40,
		BlockSizeVirtual:  0x80,
		BlockSizeLarge:    0x100,
		BlockSizeCallback: 0x200,
		BlockSizeVertex:   0x0480,
		ScriptStringCount: 3,
		ScriptStringsPtr:  0xFFFFFFFF,
		AssetCount:        5,
		AssetsPtr:         0xFFFFFFFF,
	}
	buf := make([]byte, HeaderSize)
	if err := h.Put(buf, byteio.BigEndian); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := ParseHeader(buf, byteio.BigEndian)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, h)
	}

	fp := got.Fingerprint()
	if fp.BlockSizeTemp != 0x10B0 || fp.BlockSizeVertex != 0x0480 {
		t.Fatalf("unexpected fingerprint %+v", fp)
	}
}

func TestFindPool(t *testing.T) {
	buf := make([]byte, 64)
	// Two records starting at offset 16: rawfile (0x09), then localize (0x0D).
	putRecord(buf, 16, 0x09)
	putRecord(buf, 24, 0x0D)

	h := Header{AssetCount: 2}
	records, err := FindPool(buf, h, byteio.BigEndian, 0, core.PlatformPS3)
	if err != nil {
		t.Fatalf("FindPool: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Kind != KindRawFile || records[1].Kind != KindLocalize {
		t.Fatalf("unexpected kinds: %+v", records)
	}
	if records[0].PoolOffset != 16 || records[1].PoolOffset != 24 {
		t.Fatalf("unexpected pool offsets: %+v", records)
	}
}

func TestFindPoolSkipsLeadingNoise(t *testing.T) {
	buf := make([]byte, 64)
	// Noise that almost looks like a record but has a bad type byte.
	putRecord(buf, 0, 0xFF)
	putRecord(buf, 8, 0x09)
	putRecord(buf, 16, 0x0D)

	h := Header{AssetCount: 2}
	records, err := FindPool(buf, h, byteio.BigEndian, 0, core.PlatformXenon)
	if err != nil {
		t.Fatalf("FindPool: %v", err)
	}
	if records[0].PoolOffset != 8 {
		t.Fatalf("expected scan to skip the leading noise record, got offset %d", records[0].PoolOffset)
	}
}

func TestKindForTypeIDVertexShaderOffset(t *testing.T) {
	// PS3 has the vertexshader slot; Xenon omits it, shifting later IDs down by one.
	if KindForTypeID(0x09, core.PlatformPS3) != KindRawFile {
		t.Fatal("expected rawfile on ps3 at 0x09")
	}
	if KindForTypeID(0x08, core.PlatformXenon) != KindRawFile {
		t.Fatalf("expected rawfile on xenon at shifted id 0x08, got %v", KindForTypeID(0x08, core.PlatformXenon))
	}
}

func putRecord(buf []byte, offset int, typeID byte) {
	buf[offset] = 0
	buf[offset+1] = 0
	buf[offset+2] = 0
	buf[offset+3] = typeID
	buf[offset+4] = 0xFF
	buf[offset+5] = 0xFF
	buf[offset+6] = 0xFF
	buf[offset+7] = 0xFF
}
