package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	texttosql "github.com/robineckebracht/TextToSqlDemo/pkg"
	"github.com/robineckebracht/TextToSqlDemo/pkg/audit"
	"github.com/robineckebracht/TextToSqlDemo/pkg/models"
)

// Audit records every question before it reaches the generator. Bodies
// that cannot be decoded are passed on untouched for the handler to reject.
func Audit(cfg *texttosql.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var (
				b       bytes.Buffer
				request models.GenerateSQLRequest
				user    string
			)

			if s, ok := ctx.Value(ContextKeyUser).(string); ok {
				user = s
			} else {
				user = r.Header.Get(forwardedUserHeader)
			}

			if _, err := io.Copy(&b, r.Body); err != nil {
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			if err := json.Unmarshal(b.Bytes(), &request); err != nil {
				cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			query := &audit.QueryData{
				RequestID: RequestIDFromContext(ctx),
				Question:  request.Question,
				User:      user,
				Timestamp: now.Unix(),
			}
			if cfg.LoggerAudit != nil {
				_ = cfg.LoggerAudit.Write(query)
			}

			if cfg.SplunkAudit != nil {
				if err := cfg.SplunkAudit.Write(query); err != nil {
					cfg.Logger.Errorf("Unable to send audit to Splunk: %s", err)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
					return
				}
			}

			ctx = context.WithValue(ctx, ContextKeyQuestion, request.Question)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
