package patch

import (
	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/assets"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// TransferMode selects between the two space-transfer strategies.
type TransferMode int

const (
	// TransferInPlace shifts only the bytes physically between donor and
	// recipient, preserving every other asset including unparsed kinds.
	TransferInPlace TransferMode = iota
	// TransferRebuild regenerates the zone from surviving raw+localize
	// records only; unknown kinds are lost. Used only on explicit
	// confirmation.
	TransferRebuild
)

// TransferResult reports the new slot sizes after a successful transfer.
type TransferResult struct {
	DonorMaxSize     uint32
	RecipientMaxSize uint32
}

// TransferInPlaceSpace moves n bytes of allocated slot capacity from donor
// to recipient, shrinking donor's trailing zero-padding by n and growing
// recipient's by the same amount. Only the bytes physically between the
// two raw files' slots shift; every asset outside that span keeps its
// offset. n must not exceed donor's free space (MaxSize minus live
// content length).
//
// all must contain every raw file already parsed from buf (donor and
// recipient included); the returned slice carries the same records with
// StartOffset, EndOffset, DataOffset, and MaxSize corrected for the shift,
// per §4.F's "fixing every raw-file data_offset that falls in that range."
// Callers must use the returned records, not the ones passed in, for any
// further patch against the returned buffer.
func TransferInPlaceSpace(buf []byte, donor, recipient assets.RawFile, all []assets.RawFile, n uint32) ([]byte, TransferResult, []assets.RawFile, error) {
	if n == 0 {
		return buf, TransferResult{DonorMaxSize: donor.MaxSize, RecipientMaxSize: recipient.MaxSize}, all, nil
	}
	if n > donor.MaxSize-uint32(len(donor.Content)) {
		return nil, TransferResult{}, nil, core.NewError(core.EditTooLarge, "transfer exceeds donor's free space")
	}

	donorSlotEnd := donor.DataOffset + int(donor.MaxSize)
	recipientSlotEndOrig := recipient.DataOffset + int(recipient.MaxSize)

	removeStart := donorSlotEnd - int(n)
	removeEnd := donorSlotEnd

	postRemove := func(x int) int {
		if x >= removeEnd {
			return x - int(n)
		}
		return x
	}

	insertAt := postRemove(recipientSlotEndOrig)

	postFinal := func(x int) int {
		x = postRemove(x)
		if x >= insertAt {
			return x + int(n)
		}
		return x
	}

	out := removeBytes(buf, removeStart, int(n))
	out = insertZeros(out, insertAt, int(n))

	donorSizeOffset := postFinal(sizeFieldOffset(donor))
	recipientSizeOffset := postFinal(sizeFieldOffset(recipient))
	if err := byteio.BigEndian.PutU32(out, donorSizeOffset, donor.MaxSize-n); err != nil {
		return nil, TransferResult{}, nil, core.Wrap(core.ZoneCorrupt, "transfer: writing donor size field", err)
	}
	if err := byteio.BigEndian.PutU32(out, recipientSizeOffset, recipient.MaxSize+n); err != nil {
		return nil, TransferResult{}, nil, core.Wrap(core.ZoneCorrupt, "transfer: writing recipient size field", err)
	}

	updated := make([]assets.RawFile, len(all))
	for i, rf := range all {
		rf.StartOffset = postFinal(rf.StartOffset)
		rf.EndOffset = postFinal(rf.EndOffset)
		rf.DataOffset = postFinal(rf.DataOffset)
		switch rf.Name {
		case donor.Name:
			rf.MaxSize = donor.MaxSize - n
		case recipient.Name:
			rf.MaxSize = recipient.MaxSize + n
		}
		updated[i] = rf
	}

	return out, TransferResult{
		DonorMaxSize:     donor.MaxSize - n,
		RecipientMaxSize: recipient.MaxSize + n,
	}, updated, nil
}

// sizeFieldOffset locates the big-endian size field that precedes a raw
// file's name and content, per the rawfile body layout documented in
// lib/assets/rawfile.go: [0xFFFFFFFF][size][0xFFFFFFFF][name\0][bytes][\0].
func sizeFieldOffset(rf assets.RawFile) int {
	return rf.DataOffset - len(rf.Name) - 1 - 8
}

func removeBytes(buf []byte, at, n int) []byte {
	out := make([]byte, 0, len(buf)-n)
	out = append(out, buf[:at]...)
	out = append(out, buf[at+n:]...)
	return out
}

func insertZeros(buf []byte, at, n int) []byte {
	out := make([]byte, 0, len(buf)+n)
	out = append(out, buf[:at]...)
	out = append(out, make([]byte, n)...)
	out = append(out, buf[at:]...)
	return out
}
