package convert

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sargunv/fastfile-tools/lib/core"
)

// defaultXenonToPS3 is the hand-maintained subset of platform-specific
// asset name references this core knows how to translate out of the box.
// Keys are matched as literal ASCII substrings anywhere in the zone buffer;
// values replace them.
var defaultXenonToPS3 = map[string]string{
	"xenon_hud":     "ps3_hud",
	"xenon_shader":  "ps3_shader",
	"xenon_overlay": "ps3_overlay",
}

// NameTable is the set of xenon_* <-> ps3_* substitutions the converter
// applies to asset bodies, built from the default table plus any caller
// overrides layered on top.
type NameTable struct {
	xenonToPS3 map[string]string
	ps3ToXenon map[string]string
}

// NewNameTable builds a NameTable from the built-in map plus overrides,
// which take precedence entry-by-entry over the built-in ones. overrides
// keys are xenon_* identifiers, values their ps3_* counterparts.
func NewNameTable(overrides map[string]string) NameTable {
	merged := make(map[string]string, len(defaultXenonToPS3)+len(overrides))
	for k, v := range defaultXenonToPS3 {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	reverse := make(map[string]string, len(merged))
	for k, v := range merged {
		reverse[v] = k
	}
	return NameTable{xenonToPS3: merged, ps3ToXenon: reverse}
}

// LoadOverrideFile reads an external override table from a YAML file of the
// form `xenon_foo: ps3_foo`, so new name mappings can be supplied without
// recompiling the core. A missing file is not an error: it returns an
// empty map, leaving the built-in table as the sole source.
func LoadOverrideFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, core.Wrap(core.IoFailed, "reading name override file "+path, err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, core.Wrap(core.IoFailed, "parsing name override file "+path, err)
	}
	return overrides, nil
}

// direction picks which half of the table to walk for a given source and
// target platform. Only the xenon/ps3 pair has a name table; other
// platform pairs pass through unmodified. The zero NameTable falls back to
// the built-in table for whichever direction applies.
func (t NameTable) direction(from, to core.Platform) (map[string]string, bool) {
	if t.xenonToPS3 == nil && t.ps3ToXenon == nil {
		t = NewNameTable(nil)
	}
	switch {
	case from == core.PlatformXenon && to == core.PlatformPS3:
		return t.xenonToPS3, true
	case from == core.PlatformPS3 && to == core.PlatformXenon:
		return t.ps3ToXenon, true
	default:
		return nil, false
	}
}
