package byteio

import (
	"errors"
	"testing"

	"github.com/sargunv/fastfile-tools/lib/core"
)

func TestU32RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	if err := BigEndian.PutU32(buf, 0, 0xDEADBEEF); err != nil {
		t.Fatalf("PutU32: %v", err)
	}
	got, err := BigEndian.U32(buf, 0)
	if err != nil {
		t.Fatalf("U32: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("got %#x, want %#x", got, 0xDEADBEEF)
	}

	if err := LittleEndian.PutU32(buf, 4, 0x01020304); err != nil {
		t.Fatalf("PutU32 (LE): %v", err)
	}
	if buf[4] != 0x04 || buf[7] != 0x01 {
		t.Fatalf("unexpected little-endian byte layout: %v", buf[4:8])
	}
}

func TestBoundsExceeded(t *testing.T) {
	buf := make([]byte, 4)
	_, err := BigEndian.U32(buf, 2)
	if err == nil {
		t.Fatal("expected error reading past end of buffer")
	}
	var ce *core.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *core.Error, got %T", err)
	}
	if ce.Kind != core.BoundsExceeded {
		t.Fatalf("got kind %v, want BoundsExceeded", ce.Kind)
	}
}

func TestCString(t *testing.T) {
	buf := []byte("hello\x00world\x00")
	s, next, err := CString(buf, 0)
	if err != nil {
		t.Fatalf("CString: %v", err)
	}
	if s != "hello" || next != 6 {
		t.Fatalf("got %q at %d, want \"hello\" at 6", s, next)
	}
	s, _, err = CString(buf, next)
	if err != nil {
		t.Fatalf("CString: %v", err)
	}
	if s != "world" {
		t.Fatalf("got %q, want \"world\"", s)
	}
}

func TestCStringUnterminated(t *testing.T) {
	buf := []byte("no terminator")
	_, _, err := CString(buf, 0)
	if err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestFindPattern(t *testing.T) {
	buf := []byte("xxFOOxxBARxx")
	if i := FindPattern(buf, 0, []byte("FOO")); i != 2 {
		t.Fatalf("got %d, want 2", i)
	}
	if i := FindPattern(buf, 3, []byte("FOO")); i != -1 {
		t.Fatalf("got %d, want -1", i)
	}
	if i := FindPattern(buf, 0, []byte("BAR")); i != 7 {
		t.Fatalf("got %d, want 7", i)
	}
	if i := FindPattern(buf, 0, []byte("NOPE")); i != -1 {
		t.Fatalf("got %d, want -1", i)
	}
}
