package container

import (
	"strconv"

	"github.com/sargunv/fastfile-tools/internal/byteio"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// Header carries everything detection learns about a container before its
// zone bytes are decompressed.
type Header struct {
	Variant  core.Variant
	DevBuild bool
	// RawVersion is the 4-byte version field as it appeared on disk.
	// Compress does not read it: it emits the version the version table
	// lists for the variant, so a dev-build version is not carried over.
	RawVersion uint32
}

const magicLen = 8

// DetectVariant implements the detection protocol: read the
// magic, read the version, decide signing from the magic, then try the
// version big-endian before falling back to little-endian (PC).
func DetectVariant(data []byte) (Header, error) {
	if len(data) < magicLen+4 {
		return Header{}, core.NewError(core.InvalidContainer, "file shorter than magic+version")
	}
	magic := string(data[:magicLen])

	var signing core.Signing
	switch magic {
	case MagicSigned:
		signing = core.Signed
	case MagicUnsigned:
		signing = core.Unsigned
	default:
		if len(magic) >= 2 && magic[:2] == "TA" {
			signing = core.Signed
		} else {
			return Header{}, core.NewError(core.InvalidContainer, "unrecognized magic "+quoteMagic(magic))
		}
	}

	beRaw, err := byteio.BigEndian.U32(data, magicLen)
	if err != nil {
		return Header{}, core.Wrap(core.InvalidContainer, "reading version", err)
	}
	if variant, devBuild, ok := lookupVersion(beRaw, false); ok {
		variant.Signed = signing
		return Header{Variant: variant, DevBuild: devBuild, RawVersion: beRaw}, nil
	}

	leRaw, err := byteio.LittleEndian.U32(data, magicLen)
	if err != nil {
		return Header{}, core.Wrap(core.InvalidContainer, "reading version", err)
	}
	if variant, devBuild, ok := lookupVersion(leRaw, true); ok {
		variant.Signed = signing
		return Header{Variant: variant, DevBuild: devBuild, RawVersion: leRaw}, nil
	}

	return Header{}, core.NewError(core.UnsupportedVariant, "magic matched but version 0x"+strconv.FormatUint(uint64(beRaw), 16)+" identifies no known (game, platform)")
}

func quoteMagic(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for _, b := range []byte(s) {
		if b >= 0x20 && b < 0x7F {
			out = append(out, b)
		} else {
			out = append(out, '.')
		}
	}
	out = append(out, '"')
	return string(out)
}
