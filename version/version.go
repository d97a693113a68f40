// Package version reports build information for the fsim binary.
//
// Release builds stamp the variables below with ldflags. Builds made with
// plain `go build` or `go install` fall back to the module version and VCS
// stamps the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/teranos/fsim/version.Version=v0.3.0 -X github.com/teranos/fsim/version.CommitHash=$(git rev-parse HEAD)"
var (
	Version    = "dev"
	CommitHash = ""
	BuildTime  = ""
)

// Info describes one fsim binary.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	CommitHash string `json:"commit_hash,omitempty" yaml:"commit_hash,omitempty"`
	Modified   bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	BuildTime  string `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
}

// Get returns the information of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Info{Version: Version, CommitHash: CommitHash, BuildTime: BuildTime}, bi)
}

// resolve fills what ldflags left unset from the embedded build info.
func resolve(info Info, bi *debug.BuildInfo) Info {
	info.GoVersion = runtime.Version()
	info.Platform = runtime.GOOS + "/" + runtime.GOARCH
	if bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.CommitHash == "" {
				info.CommitHash = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Short is the first seven characters of the commit, "" when unknown.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// String renders "fsim v0.3.0 @0123456+dirty, built 2026-01-02".
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fsim %s", i.Version)
	if c := i.Short(); c != "" {
		fmt.Fprintf(&b, " @%s", c)
		if i.Modified {
			b.WriteString("+dirty")
		}
	}
	if i.BuildTime != "" {
		fmt.Fprintf(&b, ", built %s", i.BuildTime)
	}
	return b.String()
}
