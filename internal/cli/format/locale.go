package format

import (
	"github.com/Xuanwo/go-locale"
)

// PreferredLanguage returns override if set, otherwise the system's base
// language code (e.g. "en", "fr"), falling back to "en" if detection fails.
// Container files in this format are split one-per-language (localized_*),
// so the CLI uses this to label which language a loaded file's localize
// entries are presumed to belong to when the filename doesn't say.
func PreferredLanguage(override string) string {
	if override != "" {
		return override
	}
	tag, err := locale.Detect()
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}
