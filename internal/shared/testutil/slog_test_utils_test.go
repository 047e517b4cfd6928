package testutil

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.Equal(t, []string{"test message", "error message"}, handler.Messages())
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("keeps attributes added with With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "features").Info("derived", "rows", 3)
		logger.Info("plain")

		records := handler.GetRecords()
		require.Len(t, records, 2)
		assert.Equal(t, "features", records[0].Attrs["component"])
		assert.NotContains(t, records[1].Attrs, "component")
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("message 1")
		logger.Info("message 2")
		assert.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Equal(t, 0, handler.Count())
	})

	t.Run("assertion helpers", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("important message", slog.String("component", "test"))
		logger.Warn("warning message", slog.Int("retry", 3))

		AssertLogContains(t, handler, slog.LevelInfo, "important")
		AssertLogAttr(t, handler, "component", "test")
		AssertNoErrors(t, handler)
	})

	t.Run("thread safety", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.With("worker", n).Info("concurrent log")
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
	})
}

func TestCSVFixtures(t *testing.T) {
	dir := t.TempDir()

	path := WriteCSVFile(t, dir, "election.csv", ElectionRows())
	assert.Equal(t, ElectionRows(), ReadCSVFile(t, path))

	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := PriceRows(3, start, true)
	require.Len(t, rows, 4)
	assert.Equal(t, "Close", rows[0][4])
	assert.Equal(t, "1950-01-03", rows[1][0])
	assert.Equal(t, "2", rows[1][4])
	assert.Equal(t, "1950-01-01", rows[3][0])
}
