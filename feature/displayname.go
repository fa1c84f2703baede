package feature

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayName title-cases a feature's stored name for presentation to a
// shell, the same normalization core/emu.go applies to signal names
// before they reach a waveform or log line. The tree itself keeps
// whatever raw name AddFeature/RenameFeature was given; only the
// copy-on-send view is normalized.
func DisplayName(name string) string {
	return titleCaser.String(strings.ToLower(name))
}
