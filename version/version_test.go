package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Version)
}

func TestResolve_FromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := resolve(Info{Version: "dev"}, bi)
	assert.Equal(t, "v0.4.1", info.Version)
	assert.Equal(t, "0123456789abcdef", info.CommitHash)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	assert.True(t, info.Modified)
}

func TestResolve_LdflagsWin(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
	}

	info := resolve(Info{Version: "v1.0.0", CommitHash: "abcdef1234", BuildTime: "today"}, bi)
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "abcdef1234", info.CommitHash)
	assert.Equal(t, "today", info.BuildTime)

	info = resolve(Info{Version: "dev"}, bi)
	assert.Equal(t, "dev", info.Version, "(devel) is not a version")
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"bare dev build", Info{Version: "dev"}, "fsim dev"},
		{"tagged build", Info{Version: "v0.3.0", CommitHash: "0123456789abcdef", BuildTime: "2026-01-02"}, "fsim v0.3.0 @0123456, built 2026-01-02"},
		{"dirty tree", Info{Version: "dev", CommitHash: "0123456789", Modified: true}, "fsim dev @0123456+dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestInfo_Short(t *testing.T) {
	assert.Equal(t, "", Info{}.Short())
	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
	assert.Equal(t, "abcdefg", Info{CommitHash: "abcdefghij"}.Short())
}
