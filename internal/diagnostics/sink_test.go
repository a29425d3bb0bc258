package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plantmatch/core/internal/diagnostics"
)

func TestRecordingCapturesInfoAndWarn(t *testing.T) {
	rec := diagnostics.NewRecording()
	rec.Infof("found %d solutions", 3)
	rec.Warnf("budget exhausted")

	assert.Equal(t, []string{"found 3 solutions"}, rec.Info)
	assert.Equal(t, []string{"budget exhausted"}, rec.Warn)
}

func TestNewSlogSinkFallsBackToDefaultLogger(t *testing.T) {
	sink := diagnostics.NewSlogSink(nil)
	assert.NotNil(t, sink.Logger)
	assert.NotPanics(t, func() { sink.Infof("hello") })
}
