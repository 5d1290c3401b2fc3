package common

import (
	"log"
	"net/http"
	"strings"
)

const (
	// AdminCookieName is the http-only cookie carrying the admin token.
	AdminCookieName = "admin_token"
	// AdminCookieMaxAge keeps the admin session alive for 7 days.
	AdminCookieMaxAge = 7 * 24 * 60 * 60
)

// TokenVerifier checks admin token validity.
type TokenVerifier interface {
	VerifyToken(token string) bool
}

// AdminGateConfig configures the admin access gate.
type AdminGateConfig struct {
	Logger *log.Logger
	Tokens TokenVerifier
	// LoginPath is where unauthenticated page requests get redirected.
	LoginPath string
	// OpenPaths pass the gate without a token (login, verify).
	OpenPaths []string
}

// AdminGate は管理系ルートを保護するミドルウェア。
// API パスは 401 の JSON を返し、ページパスはログイン画面へリダイレクトする。
func AdminGate(cfg AdminGateConfig) func(http.Handler) http.Handler {
	open := make(map[string]struct{}, len(cfg.OpenPaths))
	for _, path := range cfg.OpenPaths {
		open[path] = struct{}{}
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/admin"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := open[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if Authorized(r, cfg.Tokens) {
				next.ServeHTTP(w, r)
				return
			}
			if strings.HasPrefix(r.URL.Path, "/api/") {
				WriteError(cfg.Logger, w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			http.Redirect(w, r, loginPath, http.StatusFound)
		})
	}
}

// Authorized reports whether the request carries a valid admin cookie.
// Handlers call this again before mutations, independent of routing.
func Authorized(r *http.Request, tokens TokenVerifier) bool {
	if tokens == nil {
		return false
	}
	cookie, err := r.Cookie(AdminCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return tokens.VerifyToken(cookie.Value)
}
