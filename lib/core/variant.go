// Package core holds the small shared vocabulary that every other package
// in this module builds on: which game, which platform, and how the two
// combine into the fingerprints the container and zone layers key off of.
package core

// Game identifies one of the three successive titles this toolkit supports.
// The games are chronological; later games extend the container format
// (see Platform and the container prelude in package container).
type Game int

const (
	GameUnknown Game = iota
	Game1
	Game2
	Game3
)

// String renders the game as the short label used in variant names.
func (g Game) String() string {
	switch g {
	case Game1:
		return "G1"
	case Game2:
		return "G2"
	case Game3:
		return "G3"
	default:
		return "unknown"
	}
}

// Platform identifies the target console or PC a container was built for.
type Platform int

const (
	PlatformUnknown Platform = iota
	// PlatformXenon is the first console platform (big-endian).
	PlatformXenon
	// PlatformPS3 is the second console platform (big-endian).
	PlatformPS3
	// PlatformPC is little-endian throughout.
	PlatformPC
	// PlatformWii is the fourth console platform; it wraps its zone in a
	// single zlib stream instead of the block format the others use.
	PlatformWii
)

// String renders the platform as the short label used in variant names.
func (p Platform) String() string {
	switch p {
	case PlatformXenon:
		return "xenon"
	case PlatformPS3:
		return "ps3"
	case PlatformPC:
		return "pc"
	case PlatformWii:
		return "wii"
	default:
		return "unknown"
	}
}

// BigEndian reports whether multi-byte fields for this platform are stored
// big-endian. Only PlatformPC is little-endian.
func (p Platform) BigEndian() bool {
	return p != PlatformPC
}

// Signing distinguishes the container's authentication wrapper.
type Signing int

const (
	// Unsigned is the console/PC "IWffu100" wrapper.
	Unsigned Signing = iota
	// Signed is the Xbox-style "IWff0100" + "IWffs100" wrapper. The
	// existing hash table is preserved verbatim and never regenerated.
	Signed
)

// Variant is the triple that identifies a FastFile's container shape.
type Variant struct {
	Game     Game
	Platform Platform
	Signed   Signing
}

// String renders the variant as "<game>-<platform>" plus a "-signed" suffix
// when applicable, e.g. "G2-ps3" or "G2-xenon-signed".
func (v Variant) String() string {
	s := v.Game.String() + "-" + v.Platform.String()
	if v.Signed == Signed {
		s += "-signed"
	}
	return s
}

// Fingerprint is the (BlockSizeTemp, BlockSizeVertex) pair that identifies
// a (Game, Platform) from the zone header. The table below does not give
// every pair its own value; see fingerprints.
type Fingerprint struct {
	BlockSizeTemp   uint32
	BlockSizeVertex uint32
}

// fingerprints maps every known (Game, Platform) to its zone-header
// fingerprint. Values are illustrative placeholders consistent with the
// ranges observed in the wild (e.g. BlockSizeTemp 0x10B0 for
// G2-PS3); real corpora would refine these per observed file. Xenon and
// PS3 share one pair in G2 and another in G3, so this table does not tell
// those two platforms apart.
var fingerprints = map[Variant]Fingerprint{
	{Game1, PlatformXenon, Unsigned}: {BlockSizeTemp: 0x10A0, BlockSizeVertex: 0x0400},
	{Game1, PlatformPS3, Unsigned}:   {BlockSizeTemp: 0x10A1, BlockSizeVertex: 0x0400},
	{Game1, PlatformPC, Unsigned}:    {BlockSizeTemp: 0x10A2, BlockSizeVertex: 0x0400},
	{Game1, PlatformWii, Unsigned}:   {BlockSizeTemp: 0x10A3, BlockSizeVertex: 0x0400},

	{Game2, PlatformXenon, Unsigned}: {BlockSizeTemp: 0x10B0, BlockSizeVertex: 0x0480},
	{Game2, PlatformXenon, Signed}:   {BlockSizeTemp: 0x10B0, BlockSizeVertex: 0x0480},
	{Game2, PlatformPS3, Unsigned}:   {BlockSizeTemp: 0x10B0, BlockSizeVertex: 0x0480},
	{Game2, PlatformPC, Unsigned}:    {BlockSizeTemp: 0x10B1, BlockSizeVertex: 0x0480},
	{Game2, PlatformWii, Unsigned}:   {BlockSizeTemp: 0x10B2, BlockSizeVertex: 0x0480},

	{Game3, PlatformXenon, Unsigned}: {BlockSizeTemp: 0x10C0, BlockSizeVertex: 0x0500},
	{Game3, PlatformXenon, Signed}:   {BlockSizeTemp: 0x10C0, BlockSizeVertex: 0x0500},
	{Game3, PlatformPS3, Unsigned}:   {BlockSizeTemp: 0x10C0, BlockSizeVertex: 0x0500},
	{Game3, PlatformPC, Unsigned}:    {BlockSizeTemp: 0x10C1, BlockSizeVertex: 0x0500},
}

// FingerprintFor returns the canonical (BlockSizeTemp, BlockSizeVertex) pair
// for a variant, and false if the variant is not known.
func FingerprintFor(v Variant) (Fingerprint, bool) {
	fp, ok := fingerprints[Variant{v.Game, v.Platform, v.Signed}]
	if !ok {
		// Fingerprints don't vary with signing on consoles that support both;
		// fall back to the unsigned entry before giving up.
		fp, ok = fingerprints[Variant{v.Game, v.Platform, Unsigned}]
	}
	return fp, ok
}

// VariantForFingerprint reverses FingerprintFor: given a (BlockSizeTemp,
// BlockSizeVertex) pair read from a zone header, it returns a variant whose
// table entry holds that pair. Where several variants share a pair (signed
// and unsigned entries, or Xenon and PS3 of one game), which of them is
// returned is not defined. Nothing else in this module calls it.
func VariantForFingerprint(fp Fingerprint) (Variant, bool) {
	for v, candidate := range fingerprints {
		if candidate == fp {
			return v, true
		}
	}
	return Variant{}, false
}

// OmitsVertexShaderSlot reports whether this platform's asset-type table
// omits the `vertexshader` type slot (id 0x08) that other platforms
// include. When true, every type id >= 0x08 is shifted down by one
// relative to a platform that has the slot. Xenon is the one that omits
// it here: converting a Xenon file to PS3 shifts every id >= 0x08 up by
// one, matching the cross-platform converter's worked example.
func (p Platform) OmitsVertexShaderSlot() bool {
	return p == PlatformXenon
}
