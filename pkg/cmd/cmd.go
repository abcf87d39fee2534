package cmd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	texttosql "github.com/robineckebracht/TextToSqlDemo/pkg"
	"github.com/robineckebracht/TextToSqlDemo/pkg/audit"
	ollamaEnv "github.com/robineckebracht/TextToSqlDemo/pkg/env/ollama"
	"github.com/robineckebracht/TextToSqlDemo/pkg/env/splunk"
	"github.com/robineckebracht/TextToSqlDemo/pkg/env/user"
	"github.com/robineckebracht/TextToSqlDemo/pkg/handlers"
	"github.com/robineckebracht/TextToSqlDemo/pkg/metrics"
	"github.com/robineckebracht/TextToSqlDemo/pkg/middleware"
	"github.com/robineckebracht/TextToSqlDemo/pkg/ollama"
	"github.com/robineckebracht/TextToSqlDemo/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeoutSlack = 30 * time.Second
)

func Run(logger *zap.SugaredLogger) error {
	production := texttosql.Production()
	logger.Infof("Starting TextToSql version: %s", version.Version())

	usere := user.NewUserEnv()
	err := usere.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure users: %w", err)
	}
	logger.Infof("Production: %t, restricted: %t", production, usere.Restricted())
	logger.Debugf("Authorized users: %v", usere.Users)

	oe := ollamaEnv.NewOllamaEnv()
	err = oe.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure Ollama: %w", err)
	}
	logger.Infof("Using inference server: %s (model: %s, timeout: %s)", oe.Endpoint, oe.Model, oe.Timeout)

	se := splunk.NewSplunkEnv()
	err = se.Populate()
	if err != nil {
		return fmt.Errorf("unable to configure Splunk: %w", err)
	}

	cfg := &texttosql.Config{
		Generator:   ollama.NewClient(oe),
		OllamaEnv:   oe,
		UserEnv:     usere,
		LoggerAudit: audit.NewLoggerAudit(logger),
		Logger:      logger,
	}

	if se.Enabled() {
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)
		cfg.SplunkAudit = audit.NewSplunkAudit(se)
	}

	timeout := texttosql.RequestTimeout()
	port := texttosql.Port()
	logger.Infof("HTTP server starting on port: %d (request timeout: %s)", port, timeout)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           NewRouter(cfg, production, timeout),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      timeout + writeTimeoutSlack,
	}
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

// NewRouter registers every route with its middleware chain.
func NewRouter(cfg *texttosql.Config, production bool, timeout time.Duration) *mux.Router {
	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	generateChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.RequestID()),
		alice.Constructor(middleware.Authorization(cfg)),
		alice.Constructor(middleware.Audit(cfg)),
		alice.Constructor(middleware.Timeout(timeout)),
	).Then(handlers.GenerateSQL(cfg))

	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	r.Handle("/health", logHandler(healthLogOutput, handlers.Health())).Methods("GET")
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/generate-sql", logHandler(defaultLogOutput, generateChain)).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if !production {
		r.Handle("/openapi.json", logHandler(defaultLogOutput, handlers.OpenAPI())).Methods("GET")
	}

	return r
}
