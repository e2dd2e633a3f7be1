package util

import (
	"strings"
	"time"
)

// FormatDateTpl formats a millisecond Unix timestamp with a template such as
// "YYYY-MM-DD hh:mm". Supported placeholders: YYYY, YY, MM, DD, hh, mm, ss.
// A zero timestamp formats as "".
func FormatDateTpl(ts int64, tpl string) string {
	if ts == 0 {
		return ""
	}
	return time.UnixMilli(ts).UTC().Format(dateReplacer.Replace(tpl))
}

// Longer placeholders first so YYYY is not read as two YY.
var dateReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
)
