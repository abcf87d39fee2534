package test

import (
	"context"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func DummyLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	writer := zap.CombineWriteSyncers(zapcore.AddSync(os.Stderr), zapcore.AddSync(w))

	l := zap.New(zapcore.NewCore(encoder, writer, zapcore.DebugLevel))
	zap.RedirectStdLog(l)

	return l
}

// DummyGenerator stands in for the inference server client. It returns
// Response (or Err) and records the last model and prompt it was given.
type DummyGenerator struct {
	Response string
	Err      error
	PingErr  error

	mu     sync.Mutex
	model  string
	prompt string
	calls  int
}

func (g *DummyGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.model, g.prompt = model, prompt
	g.calls++

	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}

func (g *DummyGenerator) Ping(_ context.Context) error {
	return g.PingErr
}

func (g *DummyGenerator) Model() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.model
}

func (g *DummyGenerator) Prompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prompt
}

func (g *DummyGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
