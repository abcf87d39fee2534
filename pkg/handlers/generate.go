package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	texttosql "github.com/robineckebracht/TextToSqlDemo/pkg"
	"github.com/robineckebracht/TextToSqlDemo/pkg/metrics"
	"github.com/robineckebracht/TextToSqlDemo/pkg/middleware"
	"github.com/robineckebracht/TextToSqlDemo/pkg/models"
	"github.com/robineckebracht/TextToSqlDemo/pkg/prompt"
	"github.com/robineckebracht/TextToSqlDemo/pkg/safety"
)

const rejectedMessage = "Generated SQL was not SELECT-only."

func GenerateSQL(cfg *texttosql.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := middleware.RequestIDFromContext(ctx)

		var request models.GenerateSQLRequest

		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				http.Error(w, "Request body cannot be empty", http.StatusBadRequest)
				return
			}
			cfg.Logger.Debugf("Unable to decode request body: %s", err)
			http.Error(w, "Unable to decode request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(request.Question) == "" {
			http.Error(w, "Request without required field: question", http.StatusBadRequest)
			return
		}

		schema := prompt.DefaultSchema
		if request.Schema != nil && strings.TrimSpace(*request.Schema) != "" {
			schema = *request.Schema
		}

		p := prompt.BuildSQLitePrompt(request.Question, schema)

		start := time.Now()
		raw, err := cfg.Generator.Generate(ctx, cfg.OllamaEnv.Model, p)
		elapsed := time.Since(start)
		if err != nil {
			metrics.ObserveGeneration(metrics.OutcomeFailed, elapsed)
			cfg.Logger.Errorf("Unable to generate SQL (request: %s): %s", id, err)
			http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		sql := safety.ExtractSQL(raw)
		if !safety.IsSelectOnly(sql) {
			metrics.ObserveGeneration(metrics.OutcomeRejected, elapsed)
			cfg.Logger.Warnw("Rejected generated SQL",
				"RequestID", id,
				"Forbidden", safety.FindForbidden(sql),
				"Raw", raw,
			)
			writeJSON(cfg, w, http.StatusBadRequest, models.GenerateSQLError{Error: rejectedMessage, Raw: raw})
			return
		}

		metrics.ObserveGeneration(metrics.OutcomeAccepted, elapsed)
		cfg.Logger.Debugw("Generated SQL",
			"RequestID", id,
			"Model", cfg.OllamaEnv.Model,
			"Duration", elapsed.String(),
			"SQL", sql,
		)
		writeJSON(cfg, w, http.StatusOK, models.GenerateSQLResponse{SQL: sql})
	}
}

func writeJSON(cfg *texttosql.Config, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		cfg.Logger.Errorf("Unable to encode response: %s", err)
	}
}
