package qrcode

import "strings"

const pngExt = ".png"

// NormalizeFilename applies the default name to an empty input and
// appends ".png" unless the name already ends with it in any case.
func NormalizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), pngExt) {
		name += pngExt
	}
	return name
}
