package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type echoCommand struct {
	Text string
}

func (c echoCommand) Validate() error {
	if c.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestSendDispatchesToTypedHandler(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(echoCommand{}, Typed(func(_ context.Context, cmd echoCommand) (string, error) {
		return "echo: " + cmd.Text, nil
	})))

	result, err := b.Send(context.Background(), echoCommand{Text: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "echo: hi", result)
}

func TestSendValidatesFirst(t *testing.T) {
	b := NewCommandBus()
	called := false
	require.NoError(t, b.Register(echoCommand{}, Typed(func(_ context.Context, _ echoCommand) (string, error) {
		called = true
		return "", nil
	})))

	_, err := b.Send(context.Background(), echoCommand{})

	require.EqualError(t, err, "text is required")
	assert.False(t, called)
}

func TestSendUnknownCommand(t *testing.T) {
	_, err := NewCommandBus().Send(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}

func TestRegisterTwice(t *testing.T) {
	b := NewCommandBus()
	handler := Typed(func(_ context.Context, _ echoCommand) (string, error) { return "", nil })
	require.NoError(t, b.Register(echoCommand{}, handler))
	assert.Error(t, b.Register(echoCommand{}, handler))
}

func TestTypedRejectsOtherCommands(t *testing.T) {
	handler := Typed(func(_ context.Context, _ echoCommand) (string, error) { return "", nil })
	_, err := handler.Handle(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrUnexpectedType)
}

func TestMiddlewareOrderAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var order []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(trace("outer"), LoggingMiddleware(zap.New(core)), trace("inner"))
	require.NoError(t, b.Register(echoCommand{}, Typed(func(_ context.Context, _ echoCommand) (string, error) {
		return "", errors.New("boom")
	})))

	_, err := b.Send(context.Background(), echoCommand{Text: "x"})

	require.Error(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
	require.Equal(t, 1, logs.FilterMessage("Command failed").Len())
	assert.Equal(t, "echoCommand", logs.FilterMessage("Command failed").All()[0].ContextMap()["type"])
}
