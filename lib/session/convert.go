package session

import (
	"github.com/sargunv/fastfile-tools/lib/convert"
	"github.com/sargunv/fastfile-tools/lib/core"
)

// Convert reads a container file's bytes and produces the equivalent
// container for a different platform of the same game. It operates on raw
// container bytes rather than an open Session, since the target variant's
// zone layout may differ enough (type-ID numbering, fingerprint) that
// reusing this session's already-parsed assets would not carry over
// cleanly; the converter instead works directly against the decompressed
// buffer, see package convert.
func Convert(data []byte, targetPlatform core.Platform, targetSigned core.Signing, names convert.NameTable) ([]byte, convert.Report, error) {
	return convert.Convert(data, convert.Options{
		TargetPlatform: targetPlatform,
		TargetSigned:   targetSigned,
		Names:          names,
	})
}

// InjectRawFile replaces an existing raw file's content by name. Creating
// a new raw file is not supported through this call: only the zone
// builder can add a pool record the original didn't have, and it has no
// entry point from a live session.
func (s *Session) InjectRawFile(name string, content []byte) error {
	return s.QueueRawFileEdit(name, content)
}
