package oidcauth

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func Test_fieldsFromArgs(t *testing.T) {
	t.Run("It pairs alternating keys and values", func(t *testing.T) {
		fields := fieldsFromArgs([]any{"subject", "user-123", "attempts", 3})
		assert.Equal(t, map[string]any{"subject": "user-123", "attempts": 3}, fields)
	})

	t.Run("It keeps a trailing key with a nil value", func(t *testing.T) {
		fields := fieldsFromArgs([]any{"subject", "user-123", "dangling"})
		assert.Equal(t, map[string]any{"subject": "user-123", "dangling": nil}, fields)
	})

	t.Run("It stringifies non-string keys", func(t *testing.T) {
		fields := fieldsFromArgs([]any{42, "value"})
		assert.Equal(t, map[string]any{"42": "value"}, fields)
	})

	t.Run("It handles empty args", func(t *testing.T) {
		assert.Empty(t, fieldsFromArgs(nil))
	})
}

func Test_LoggerAdapters(t *testing.T) {
	t.Run("zap adapter forwards message and fields", func(t *testing.T) {
		core, observed := observer.New(zap.DebugLevel)
		logger := NewZapLogger(zap.New(core).Sugar())

		logger.Info("authentication successful", "subject", "user-123")

		entries := observed.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "authentication successful", entries[0].Message)
		assert.Equal(t, "user-123", entries[0].ContextMap()["subject"])
	})

	t.Run("zerolog adapter forwards message and fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewZerologLogger(zerolog.New(&buf))

		logger.Warn("scope check failed", "subject", "user-123")

		assert.Contains(t, buf.String(), "scope check failed")
		assert.Contains(t, buf.String(), `"subject":"user-123"`)
	})

	t.Run("logrus adapter forwards message and fields", func(t *testing.T) {
		backend, hook := logrustest.NewNullLogger()
		backend.SetLevel(logrus.DebugLevel)
		logger := NewLogrusLogger(backend)

		logger.Error("token validation failed", "subject", "user-123")

		require.Len(t, hook.Entries, 1)
		assert.Equal(t, "token validation failed", hook.LastEntry().Message)
		assert.Equal(t, "user-123", hook.LastEntry().Data["subject"])
	})
}
