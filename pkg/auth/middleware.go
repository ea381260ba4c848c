package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the staff username of the session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// WithUserID stores the staff username in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Session reads the session cookie and, when it holds a valid staff token,
// stores the username and staff flag in the request context. Requests without
// a valid session continue anonymously.
func Session(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := VerifySessionToken(cookie.Value, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUserID(r.Context(), claims.Subject)
			ctx = WithStaff(ctx, claims.Staff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects requests without a staff session. Browsers are
// redirected to loginPath with the original URL in next; other clients get 401.
func RequireStaff(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsStaffFromContext(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			if wantsHTML(r) {
				target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
