// Package buildinfo carries version information stamped in at build time:
//
//	go build -ldflags "-X github.com/FunnySam/runelite/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/FunnySam/runelite/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/FunnySam/runelite/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/overlayctl
package buildinfo

import "fmt"

// Stamped via ldflags; the defaults identify a local build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
