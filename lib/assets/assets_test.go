package assets

import (
	"bytes"
	"testing"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

func buildRawFileBuf(name string, maxSize uint32, content []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	sizeBuf := make([]byte, 4)
	_ = byteio.BigEndian.PutU32(sizeBuf, 0, maxSize)
	buf.Write(sizeBuf)
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	buf.WriteString(name)
	buf.WriteByte(0)
	padded := make([]byte, maxSize)
	copy(padded, content)
	buf.Write(padded)
	buf.WriteByte(0)
	return buf.Bytes()
}

func TestParseRawFile(t *testing.T) {
	content := []byte("hello\n")
	buf := buildRawFileBuf("maps/_load.gsc", 0x20, content)

	searchFrom := bytes.Index(buf, []byte(".gsc"))
	rf, err := ParseRawFile(buf, byteio.BigEndian, searchFrom)
	if err != nil {
		t.Fatalf("ParseRawFile: %v", err)
	}
	if rf.Name != "maps/_load.gsc" {
		t.Fatalf("unexpected name %q", rf.Name)
	}
	if rf.MaxSize != 0x20 {
		t.Fatalf("unexpected MaxSize %#x", rf.MaxSize)
	}
	if !bytes.Equal(rf.Content, content) {
		t.Fatalf("unexpected content %q", rf.Content)
	}
}

func TestRawFilePatchRejectsOversize(t *testing.T) {
	buf := buildRawFileBuf("test.cfg", 8, []byte("short"))
	searchFrom := bytes.Index(buf, []byte(".cfg"))
	rf, err := ParseRawFile(buf, byteio.BigEndian, searchFrom)
	if err != nil {
		t.Fatalf("ParseRawFile: %v", err)
	}
	if err := rf.Patch(buf, []byte("this is way too long")); err == nil {
		t.Fatal("expected EditTooLarge error")
	}
	if err := rf.Patch(buf, []byte("fits!!!!")); err != nil { // exactly MaxSize, no padding
		t.Fatalf("Patch: %v", err)
	}
}

func TestParseLocalizeCaseA(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	recordStart := buf.Len()
	buf.WriteString("Hello world")
	buf.WriteByte(0)
	buf.WriteString("MPUI_HELLO")
	buf.WriteByte(0)

	data := buf.Bytes()
	loc, err := ParseLocalize(data, byteio.BigEndian, recordStart)
	if err != nil {
		t.Fatalf("ParseLocalize: %v", err)
	}
	if loc.Case != LocalizeCaseA {
		t.Fatalf("expected case A, got %v", loc.Case)
	}
	if loc.Text != "Hello world" || loc.Key != "MPUI_HELLO" {
		t.Fatalf("unexpected text/key: %q/%q", loc.Text, loc.Key)
	}
}

func TestParseLocalizeCaseB(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	recordStart := buf.Len()
	buf.WriteString("MPUI_EMPTY")
	buf.WriteByte(0)

	data := buf.Bytes()
	loc, err := ParseLocalize(data, byteio.BigEndian, recordStart)
	if err != nil {
		t.Fatalf("ParseLocalize: %v", err)
	}
	if loc.Case != LocalizeCaseB {
		t.Fatalf("expected case B, got %v", loc.Case)
	}
	if loc.Key != "MPUI_EMPTY" {
		t.Fatalf("unexpected key %q", loc.Key)
	}
}

func TestLocalizePatchBoundary(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	recordStart := buf.Len()
	buf.WriteString("0123 56789") // 10 bytes of text; the space keeps it from reading as a Case B key
	buf.WriteByte(0)
	buf.WriteString("MPUI_KEY")
	buf.WriteByte(0)

	data := buf.Bytes()
	loc, err := ParseLocalize(data, byteio.BigEndian, recordStart)
	if err != nil {
		t.Fatalf("ParseLocalize: %v", err)
	}
	// text_area_size is 11 (10 text bytes + terminator); exactly 10 bytes should fit.
	if loc.TextAreaSize() != 11 {
		t.Fatalf("expected text_area_size 11, got %d", loc.TextAreaSize())
	}
	if err := loc.Patch(data, "0123456789"); err != nil {
		t.Fatalf("Patch at boundary: %v", err)
	}
	if data[loc.keyStart-1] != 0 {
		t.Fatalf("expected terminator immediately before key_start")
	}
	if err := loc.Patch(data, "01234567890"); err == nil {
		t.Fatal("expected EditTooLarge for text one byte too long")
	}
}

func TestParseWeaponAlignmentAdjust(t *testing.T) {
	buf := make([]byte, 0x40)
	for i := range buf {
		buf[i] = 0xFF
	}
	// Effective record starts at +2 due to the alignment run; write damage
	// field (offset 0x08 for Game2) at 2+0x08.
	_ = byteio.BigEndian.PutU32(buf, 2+0x08, 500)

	w, err := ParseWeapon(buf, byteio.BigEndian, "iw5_ak47", 0, core.Game2, 0)
	if err != nil {
		t.Fatalf("ParseWeapon: %v", err)
	}
	if w.AlignmentAdjust != 2 {
		t.Fatalf("expected alignment_adjust 2, got %d", w.AlignmentAdjust)
	}
	if w.Values["damage"] != 500 {
		t.Fatalf("expected damage 500, got %d", w.Values["damage"])
	}
}

func TestParseWeaponClampsOvershoot(t *testing.T) {
	buf := make([]byte, 0x80)
	w, err := ParseWeapon(buf, byteio.BigEndian, "iw5_m4", 0, core.Game2, 0x20)
	if err != nil {
		t.Fatalf("ParseWeapon: %v", err)
	}
	if w.EndOffset > 0x20 {
		t.Fatalf("expected end offset clamped to next weapon's start, got %d", w.EndOffset)
	}
}
