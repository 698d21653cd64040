package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct {
	Name string
}

func (c pingCommand) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func TestCommandBus_SendDispatchesToHandler(t *testing.T) {
	b := NewCommandBus(LoggingMiddleware(zap.NewNop()))
	var got string
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		got = cmd.(pingCommand).Name
		return nil
	})))

	err := b.Send(context.Background(), pingCommand{Name: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestCommandBus_ValidationRunsBeforeHandler(t *testing.T) {
	b := NewCommandBus()
	called := false
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		called = true
		return nil
	})))

	err := b.Send(context.Background(), pingCommand{})

	assert.EqualError(t, err, "name is required")
	assert.False(t, called)
}

func TestCommandBus_HandlerErrorIsNotWrapped(t *testing.T) {
	b := NewCommandBus()
	want := errors.New("store down")
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		return want
	})))

	err := b.Send(context.Background(), pingCommand{Name: "x"})

	assert.Same(t, want, err)
}

func TestCommandBus_RegisterTwice(t *testing.T) {
	b := NewCommandBus()
	h := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })

	require.NoError(t, b.Register(pingCommand{}, h))
	assert.ErrorIs(t, b.Register(pingCommand{}, h), ErrHandlerExists)
}

func TestCommandBus_UnknownCommand(t *testing.T) {
	b := NewCommandBus()

	err := b.Send(context.Background(), pingCommand{Name: "x"})

	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestPipeline_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}
	h := NewPipeline(mw("outer"), mw("inner")).Execute(CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
		order = append(order, "handler")
		return nil
	}))

	require.NoError(t, h.Handle(context.Background(), pingCommand{Name: "x"}))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
