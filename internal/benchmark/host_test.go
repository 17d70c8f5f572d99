package benchmark

import (
	"context"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectHost(t *testing.T) {
	info := CollectHost(context.Background())

	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Equal(t, runtime.NumCPU(), info.LogicalCPUs)
}

func TestHostInfo_LogValue(t *testing.T) {
	v := HostInfo{Hostname: "bench", OS: "linux", Arch: "arm64", LogicalCPUs: 4}.LogValue()

	assert.Equal(t, slog.KindGroup, v.Kind())
	attrs := v.Group()
	assert.Equal(t, "hostname", attrs[0].Key)
	assert.Equal(t, "bench", attrs[0].Value.String())
}
