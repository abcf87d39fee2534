package splunk

import (
	"os"

	"github.com/robineckebracht/TextToSqlDemo/pkg/env"
)

type Env struct {
	Index     string
	Endpoint  string
	Token     string
	Host      string
	Namespace string
	Pod       string
}

func NewSplunkEnv() *Env {
	return &Env{}
}

// Populate leaves the environment disabled when SPLUNK_ENDPOINT is unset.
// Once an endpoint is given, the index and token become mandatory.
func (s *Env) Populate() error {
	endpoint := os.Getenv("SPLUNK_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	s.Endpoint = endpoint

	index := os.Getenv("SPLUNK_INDEX")
	if index == "" {
		return &env.Error{Name: "SPLUNK_INDEX"}
	}
	s.Index = index

	token := os.Getenv("SPLUNK_TOKEN")
	if token == "" {
		return &env.Error{Name: "SPLUNK_TOKEN"}
	}
	s.Token = token

	s.Host = os.Getenv("HOST")
	s.Namespace = os.Getenv("NAMESPACE")
	s.Pod = os.Getenv("POD_NAME")

	return nil
}

func (s *Env) Enabled() bool {
	return s.Endpoint != ""
}
