package session

import (
	"github.com/sargunv/fastfile-tools/lib/container"
	"github.com/sargunv/fastfile-tools/lib/core"
	"github.com/sargunv/fastfile-tools/lib/patch"
)

// TransferSpace moves n bytes of allocated slot capacity from donor to
// recipient, both named raw files already parsed by Open. TransferInPlace
// shifts only the bytes between the two slots, preserving every other
// asset including ones this session left unparsed. TransferRebuild instead
// regenerates the zone from surviving raw files and localize entries only
// and is refused unless opts confirms dropping unparsed assets, mirroring
// Save's rebuild gate.
func (s *Session) TransferSpace(donorName, recipientName string, n uint32, mode patch.TransferMode, opts SaveOptions) (patch.TransferResult, []byte, error) {
	donor, ok := s.FindRawFile(donorName)
	if !ok {
		return patch.TransferResult{}, nil, core.NewError(core.ZoneCorrupt, "no such raw file: "+donorName)
	}
	recipient, ok := s.FindRawFile(recipientName)
	if !ok {
		return patch.TransferResult{}, nil, core.NewError(core.ZoneCorrupt, "no such raw file: "+recipientName)
	}

	switch mode {
	case patch.TransferInPlace:
		newZone, result, updated, err := patch.TransferInPlaceSpace(s.Zone, donor, recipient, s.RawFiles, n)
		if err != nil {
			return patch.TransferResult{}, nil, err
		}
		out, err := container.Compress(newZone, s.Variant, s.Prelude, s.SignedExtra)
		if err != nil {
			return patch.TransferResult{}, nil, err
		}
		s.Zone = newZone
		s.RawFiles = updated
		return result, out, nil

	case patch.TransferRebuild:
		if len(s.UnparsedAssets) > 0 && !opts.RebuildOnFail {
			return patch.TransferResult{}, nil, core.NewError(core.RebuildNeeded,
				"transfer rebuild required but would drop unparsed assets; confirm with RebuildOnFail")
		}
		result := patch.TransferResult{
			DonorMaxSize:     donor.MaxSize - n,
			RecipientMaxSize: recipient.MaxSize + n,
		}
		out, _, err := s.rebuildWithSlotSizes(donorName, result.DonorMaxSize, recipientName, result.RecipientMaxSize)
		if err != nil {
			return patch.TransferResult{}, nil, err
		}
		return result, out, nil

	default:
		return patch.TransferResult{}, nil, core.NewError(core.ZoneCorrupt, "unknown transfer mode")
	}
}
