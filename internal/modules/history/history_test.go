package history

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/reusedev/room-stager/internal/modules/observer"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecorder(t *testing.T) *Recorder {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "history.db")), &gorm.Config{})
	require.NoError(t, err)
	r, err := NewRecorder(db)
	require.NoError(t, err)
	return r
}

func TestRecorder(t *testing.T) {
	r := newRecorder(t)
	at := time.Now()
	r.Update(observer.EventModelAttempt, &observer.Attempt{
		RequestID: "req-1", Flow: "edit", Model: "image-a", Attempt: 0,
		StatusCode: 503, Duration: 1500 * time.Millisecond, Err: errors.New("overloaded"), At: at,
	})
	r.Update(observer.EventModelAttempt, &observer.Attempt{
		RequestID: "req-1", Flow: "edit", Model: "image-b", Attempt: 0, Duration: time.Second, At: at,
	})
	r.Update(observer.EventModelAttempt, &observer.Attempt{RequestID: "req-2", Model: "text", At: at})
	r.Update(observer.EventFallback, &observer.Fallback{RequestID: "req-1"})

	rows, err := r.ByRequest("req-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "image-a", rows[0].ModelName)
	require.Equal(t, 503, rows[0].StatusCode)
	require.Equal(t, int64(1500), rows[0].DurationMs)
	require.Equal(t, "overloaded", rows[0].Error)
	require.Equal(t, "image-b", rows[1].ModelName)
	require.Empty(t, rows[1].Error)
}

func TestRecorderTruncatesError(t *testing.T) {
	r := newRecorder(t)
	r.Update(observer.EventModelAttempt, &observer.Attempt{
		RequestID: "req-long", Model: "image-a", Err: errors.New(strings.Repeat("x", 3000)), At: time.Now(),
	})
	rows, err := r.ByRequest("req-long")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Error, maxErrorLen)
}
