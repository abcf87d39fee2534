package texttosql

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/robineckebracht/TextToSqlDemo/pkg/audit"
	"github.com/robineckebracht/TextToSqlDemo/pkg/env"
	"github.com/robineckebracht/TextToSqlDemo/pkg/env/ollama"
	"github.com/robineckebracht/TextToSqlDemo/pkg/env/user"
	"go.uber.org/zap"
)

const (
	defaultRequestTimeout = 3 * time.Minute
	defaultPort           = 8080
)

// Generator is the subset of the inference server client the handlers use.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
	Ping(ctx context.Context) error
}

type Config struct {
	Generator   Generator
	OllamaEnv   *ollama.Env
	UserEnv     *user.Env
	LoggerAudit *audit.LoggerAudit
	SplunkAudit *audit.SplunkAudit
	Logger      *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := env.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

func Port() int {
	if s := os.Getenv("PORT"); s != "" {
		if p, err := strconv.Atoi(s); err == nil && p > 0 && p < 65536 {
			return p
		}
	}
	return defaultPort
}
