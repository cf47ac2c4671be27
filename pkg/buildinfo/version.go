// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/tompkins/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/tompkins/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/tompkins/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/tompkins
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the version template for cobra's --version.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
