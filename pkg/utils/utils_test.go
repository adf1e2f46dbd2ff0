package utils

import (
	"testing"
	"time"

	"ratemynus-portal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrettyMonth(t *testing.T) {
	d := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 2024", PrettyMonth(d))
}

func TestGoSafe_LogsRecoveredPanic(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := &logger.Logger{Logger: zap.New(core)}
	log = log.With(logger.StringField("session_id", "abc"))

	done := make(chan struct{})
	GoSafe(log, func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Recovered from panic").Len() == 1
	}, time.Second, 5*time.Millisecond)
	entry := logs.FilterMessage("Recovered from panic").All()[0]
	assert.Equal(t, "boom", entry.ContextMap()["panic"])
	assert.Equal(t, "abc", entry.ContextMap()["session_id"])
	assert.NotEmpty(t, entry.ContextMap()["stack"])
}

func TestGoSafe_NilLoggerStillRecovers(t *testing.T) {
	done := make(chan struct{})
	GoSafe(nil, func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestToPointer(t *testing.T) {
	p := ToPointer(3.5)
	assert.Equal(t, 3.5, *p)
}
