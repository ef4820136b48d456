package container

import "github.com/sargunv/fastfile-tools/lib/core"

// versionEntry associates one raw 4-byte version value with the variant it
// identifies and whether that version marks a dev-build file.
type versionEntry struct {
	version  uint32
	variant  core.Variant
	devBuild bool
}

// knownVersions enumerates the version constants that distinguish PC
// and Wii from console builds for each game. Console and Wii versions are interpreted big-endian; PC versions
// are interpreted little-endian. A version may appear for more than one
// signing variant (the numeric version itself doesn't encode signing; the
// magic does).
var knownVersions = []versionEntry{
	{version: 0x00000127, variant: core.Variant{Game: core.Game1, Platform: core.PlatformXenon}},
	{version: 0x00000127, variant: core.Variant{Game: core.Game1, Platform: core.PlatformPS3}},
	{version: 0x0000012C, variant: core.Variant{Game: core.Game1, Platform: core.PlatformPC}},
	{version: 0x00000114, variant: core.Variant{Game: core.Game1, Platform: core.PlatformWii}},

	{version: 0x00000183, variant: core.Variant{Game: core.Game2, Platform: core.PlatformXenon}},
	{version: 0x00000183, variant: core.Variant{Game: core.Game2, Platform: core.PlatformPS3}},
	{version: 0x00000185, variant: core.Variant{Game: core.Game2, Platform: core.PlatformPC}},
	{version: 0x0000016A, variant: core.Variant{Game: core.Game2, Platform: core.PlatformWii}},
	{version: 0x00000184, variant: core.Variant{Game: core.Game2, Platform: core.PlatformXenon}, devBuild: true},

	{version: 0x000001E3, variant: core.Variant{Game: core.Game3, Platform: core.PlatformXenon}},
	{version: 0x000001E3, variant: core.Variant{Game: core.Game3, Platform: core.PlatformPS3}},
	{version: 0x000001E5, variant: core.Variant{Game: core.Game3, Platform: core.PlatformPC}},
}

// lookupVersion finds the (game, platform) a raw version value identifies
// when read in the given byte order. Returns ok=false if no entry matches.
func lookupVersion(raw uint32, pc bool) (variant core.Variant, devBuild bool, ok bool) {
	for _, e := range knownVersions {
		if e.version != raw {
			continue
		}
		isPC := e.variant.Platform == core.PlatformPC
		if isPC != pc {
			continue
		}
		return e.variant, e.devBuild, true
	}
	return core.Variant{}, false, false
}

// versionFor returns the raw 4-byte version value to emit for a variant,
// used by the compression path.
func versionFor(v core.Variant) (uint32, bool) {
	for _, e := range knownVersions {
		if e.variant.Game == v.Game && e.variant.Platform == v.Platform && !e.devBuild {
			return e.version, true
		}
	}
	return 0, false
}
