package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/catalyst/backend/pkg/auth"
)

// DashboardPath is where a successful form login lands without a next parameter.
const DashboardPath = "/admin/dashboard"

// AuthHandler signs staff in and out.
type AuthHandler struct {
	auth          *auth.Authenticator
	secureCookies bool
}

func NewAuthHandler(a *auth.Authenticator, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: a, secureCookies: secureCookies}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Next     string `json:"next"`
}

// Login handles POST /admin/login with a JSON body or a form post.
// Form posts are redirected to next (or the dashboard); JSON clients get {"ok":true}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAdminBody)

	var req loginRequest
	isForm := false
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		isForm = true
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_form")
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		req.Next = r.FormValue("next")
	default:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.WarnContext(r.Context(), "staff login rejected", "username", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "staff login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}

	auth.SetSessionCookie(w, token, h.auth.TTL(), h.secureCookies)
	slog.InfoContext(r.Context(), "staff login", "username", req.Username)
	if isForm {
		http.Redirect(w, r, safeNext(req.Next), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookies)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// safeNext only accepts same-site absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return DashboardPath
	}
	return next
}
