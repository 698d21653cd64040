package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracer_DisabledRunsFunction(t *testing.T) {
	tracer := NewTracer("symptomcheck", false)
	called := false

	err := tracer.TraceFunction(context.Background(), "analyze", func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestTracer_NoSegmentPassesErrorThrough(t *testing.T) {
	tracer := NewTracer("symptomcheck", true)
	want := errors.New("boom")

	err := tracer.TraceFunction(context.Background(), "store.create", func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
}

func TestTracer_NilIsSafe(t *testing.T) {
	var tracer *Tracer

	assert.False(t, tracer.Enabled())
	assert.NotPanics(t, func() {
		tracer.AddAnnotation(context.Background(), "owner", "u1")
		_ = tracer.TraceFunction(context.Background(), "x", func(context.Context) error { return nil })
	})
}
