package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedLoggerFollowsDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	l := NewNamed("test.named")
	assert.Same(t, l, NewNamed("test.named"))

	core, recorded := observer.New(zapcore.DebugLevel)
	SetDefault(zap.New(core))

	l.Debug("hello", zap.Int("n", 1))
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test.named", entries[0].LoggerName)
	assert.Equal(t, "hello", entries[0].Message)
}

func TestBuild(t *testing.T) {
	l, err := Build("warn", FormatJSON)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = Build("debug", "")
	require.NoError(t, err)

	_, err = Build("loud", FormatConsole)
	require.Error(t, err)

	_, err = Build("info", "xml")
	require.Error(t, err)
}
