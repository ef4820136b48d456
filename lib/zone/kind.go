package zone

import "github.com/sargunv/fastfile-tools/lib/core"

// Kind identifies the semantic meaning of an asset-pool record, independent
// of its numeric type ID (which shifts between platforms).
type Kind int

const (
	KindUnknown Kind = iota
	KindRawFile
	KindLocalize
	KindStringTable
	KindMenuList
	KindTechSet
	KindXAnim
	KindWeapon
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindRawFile:
		return "rawfile"
	case KindLocalize:
		return "localize"
	case KindStringTable:
		return "stringtable"
	case KindMenuList:
		return "menulist"
	case KindTechSet:
		return "techset"
	case KindXAnim:
		return "xanim"
	case KindWeapon:
		return "weapon"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// minTypeID, maxTypeID bound the valid asset-pool type-ID range a record's
// type byte must fall within for the scanning heuristic to accept it.
const (
	minTypeID = 0x01
	maxTypeID = 0x24
)

// vertexShaderTypeID is the type-ID slot that some platforms omit; on those
// platforms every later ID is shifted down by one relative to the table
// below, which is expressed in the non-omitting platform's numbering.
const vertexShaderTypeID = 0x08

// baseKindTable maps a type ID, expressed in the numbering of a platform
// that has every slot (i.e. does not omit vertexshader), to its semantic
// kind. Slots not named here (including vertexshader itself, which this
// core does not parse) are kept as unparsed records -- still pooled and
// counted, but skipped by the asset parsers.
var baseKindTable = map[uint32]Kind{
	0x01: KindXAnim,
	0x02: KindWeapon,
	0x03: KindImage,
	0x04: KindTechSet,
	0x09: KindRawFile,
	0x0A: KindStringTable,
	0x0C: KindMenuList,
	0x0D: KindLocalize,
}

// CanonicalTypeID expresses an on-disk type ID in the numbering of a
// platform that has every slot (i.e. does not omit vertexshader),
// regardless of whether p itself omits it. Used for records of any kind,
// including ones baseKindTable has no entry for (e.g. vertexshader, or
// asset kinds this core does not parse), so the converter can shift every
// record consistently rather than only the ones it understands.
func CanonicalTypeID(typeID uint32, p core.Platform) uint32 {
	if p.OmitsVertexShaderSlot() && typeID >= vertexShaderTypeID {
		return typeID + 1
	}
	return typeID
}

// PlatformTypeID is the inverse of CanonicalTypeID: it expresses a
// canonical (full-table) type ID in the numbering platform p actually uses
// on disk.
func PlatformTypeID(canonical uint32, p core.Platform) uint32 {
	if p.OmitsVertexShaderSlot() && canonical >= vertexShaderTypeID {
		return canonical - 1
	}
	return canonical
}

// KindForTypeID maps a record's on-disk type ID to a semantic kind for the
// given platform, correcting for the vertexshader slot some platforms omit.
func KindForTypeID(typeID uint32, p core.Platform) Kind {
	if k, ok := baseKindTable[CanonicalTypeID(typeID, p)]; ok {
		return k
	}
	return KindUnknown
}

// TypeIDForKind is the inverse of KindForTypeID, used by the zone builder
// to emit a platform-correct type ID for a kind.
func TypeIDForKind(k Kind, p core.Platform) (uint32, bool) {
	for id, kind := range baseKindTable {
		if kind != k {
			continue
		}
		return PlatformTypeID(id, p), true
	}
	return 0, false
}
