package version

import (
	"runtime"
	"strings"
)

// Set at build time with -ldflags "-X babble-bot/internal/version.BuildDate=..."
var (
	AppName        = "Babble Bot"
	AppDescription = "Remembers what you say and says some of it back."
	BuildDate      = ""
	GoVersion      = ""
)

// BuildInfo describes the running binary, e.g. "built 2024-05-01 with go1.24.2".
// GoVersion falls back to the toolchain the binary was compiled with.
func BuildInfo() string {
	goVersion := GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}

	parts := []string{"built"}
	if BuildDate != "" {
		parts = append(parts, BuildDate)
	}
	parts = append(parts, "with", goVersion)
	return strings.Join(parts, " ")
}
