package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/sarif2md/pkg/shared/config"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, hclog.Trace, getLogLevel("TRACE"))
	assert.Equal(t, hclog.Debug, getLogLevel("DEBUG"))
	assert.Equal(t, hclog.Warn, getLogLevel("WARN"))
	assert.Equal(t, hclog.Error, getLogLevel("ERROR"))
	assert.Equal(t, hclog.Info, getLogLevel(""))
	assert.Equal(t, hclog.Info, getLogLevel("verbose"))
}

func TestNewLoggerLevelPriority(t *testing.T) {
	t.Setenv("SARIF2MD_LOG_LEVEL", "error")

	lg := NewLogger(&config.Config{Logger: config.Logger{Level: "debug"}}, "test")
	assert.True(t, lg.IsDebug())

	lg = NewLogger(nil, "test")
	assert.False(t, lg.IsWarn())
	assert.True(t, lg.IsError())
}
