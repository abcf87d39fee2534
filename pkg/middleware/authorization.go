package middleware

import (
	"context"
	"fmt"
	"net/http"

	texttosql "github.com/robineckebracht/TextToSqlDemo/pkg"
)

// Authorization enforces the user allow-list when one is configured.
// Without an allow-list the forwarded user, if any, is only recorded.
func Authorization(cfg *texttosql.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user := r.Header.Get(forwardedUserHeader)

			if !cfg.UserEnv.Restricted() {
				if user != "" {
					ctx = context.WithValue(ctx, ContextKeyUser, user)
				}
				h.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if user == "" {
				l := fmt.Sprintf("Request without required header: %s", forwardedUserHeader)
				http.Error(w, l, http.StatusBadRequest)
				return
			}

			if !cfg.UserEnv.Allowed(user) {
				l := "User does not have required permissions"
				cfg.Logger.Errorf("%s: %s", l, user)
				http.Error(w, l, http.StatusForbidden)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUser, user)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
