package ollama

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/robineckebracht/TextToSqlDemo/pkg/env"
)

const (
	DefaultEndpoint = "http://localhost:11434"
	DefaultModel    = "llama3.1:8b"
	DefaultTimeout  = 120 * time.Second
)

type Env struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

func NewOllamaEnv() *Env {
	return &Env{
		Endpoint: DefaultEndpoint,
		Model:    DefaultModel,
		Timeout:  DefaultTimeout,
	}
}

func (o *Env) Populate() error {
	if endpoint := os.Getenv("OLLAMA_ENDPOINT"); endpoint != "" {
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return &env.ConversionError{Name: "OLLAMA_ENDPOINT"}
		}
		o.Endpoint = strings.TrimRight(endpoint, "/")
	}

	if model := strings.TrimSpace(os.Getenv("OLLAMA_MODEL")); model != "" {
		o.Model = model
	}

	if timeout := os.Getenv("OLLAMA_TIMEOUT"); timeout != "" {
		d, err := env.ParseDuration(timeout)
		if err != nil || d == 0 {
			return &env.ConversionError{Name: "OLLAMA_TIMEOUT"}
		}
		o.Timeout = d
	}

	return nil
}
