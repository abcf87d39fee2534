//go:build integration
// +build integration

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/orlangure/gnomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/robineckebracht/TextToSqlDemo/pkg/cmd"
)

const ollamaImage = "ollama/ollama:latest"

func createUsersFile(t *testing.T, users []string) string {
	file, err := os.CreateTemp(t.TempDir(), "users-")
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	_, err = file.WriteString(strings.Join(users, "\n"))
	require.NoError(t, err)

	return file.Name()
}

func startOllama(t *testing.T) *gnomock.Container {
	ollama, err := gnomock.StartCustom(ollamaImage, gnomock.DefaultTCP(11434),
		gnomock.WithUseLocalImagesFirst(),
		gnomock.WithTimeout(5*time.Minute),
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = gnomock.Stop(ollama) })

	return ollama
}

// startMockSplunk accepts HEC events and hands their bodies to events.
func startMockSplunk(t *testing.T, events chan<- string) *httptest.Server {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/services/collector/event" || r.Header.Get("Authorization") != "Splunk test" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"text":"Invalid authorization","code":3}`)
			return
		}

		b, _ := io.ReadAll(r.Body)
		events <- string(b)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"Success","code":0}`)
	}))

	t.Cleanup(s.Close)

	return s
}

// startMockOllama answers every generate call with the given model output.
func startMockOllama(t *testing.T, response string) *httptest.Server {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, "Ollama is running")
		case "/api/generate":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"model":    "llama3.1:8b",
				"response": response,
				"done":     true,
			})
		default:
			http.NotFound(w, r)
		}
	}))

	t.Cleanup(s.Close)

	return s
}

func setEnvironment(t *testing.T, port int, ollamaEndpoint, usersFile, splunkToken, splunkEndpoint string) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("REQUEST_TIMEOUT", "30s")

	t.Setenv("OLLAMA_ENDPOINT", ollamaEndpoint)
	t.Setenv("OLLAMA_MODEL", "llama3.1:8b")
	t.Setenv("OLLAMA_TIMEOUT", "20s")

	t.Setenv("SPLUNK_INDEX", "main")
	t.Setenv("SPLUNK_TOKEN", splunkToken)
	t.Setenv("SPLUNK_ENDPOINT", splunkEndpoint)

	t.Setenv("HOST", "test")
	t.Setenv("NAMESPACE", "test")
	t.Setenv("POD_NAME", "test")

	t.Setenv("USERS_FILE_PATH", usersFile)
	t.Setenv("AUTHORIZED_USERS", "")
}

func startServer(t *testing.T, port int) string {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	go func() {
		if err := cmd.Run(logger.Sugar()); err != nil {
			logger.Sugar().Errorf("Unable to start TextToSql: %s", err)
		}
	}()
	waitForPortOpen(port)

	return fmt.Sprintf("http://localhost:%d", port)
}

func waitForPortOpen(port int) {
	address := net.JoinHostPort("localhost", strconv.Itoa(port))
	for {
		conn, err := net.DialTimeout("tcp", address, 500*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func postQuestion(t *testing.T, url, user, body string) (int, string) {
	req, err := http.NewRequest(http.MethodPost, url+"/generate-sql", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Forwarded-User", user)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(b)
}
