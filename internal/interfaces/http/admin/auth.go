package admin

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxJSONRequestBody)).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !h.tokens.VerifyPassword(req.Password) {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Invalid password")
			return
		}

		token, err := h.tokens.CreateToken()
		if err != nil {
			h.logger.Printf("admin login token issue failed: %v", err)
			common.WriteError(h.logger, w, http.StatusUnauthorized, "Invalid password")
			return
		}

		http.SetCookie(w, h.sessionCookie(token, common.AdminCookieMaxAge))
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (h *Handler) verifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authenticated := common.Authorized(r, h.tokens)
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"authenticated": authenticated})
	}
}

func (h *Handler) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, h.sessionCookie("", -1))
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"success": true})
	}
}

// sessionCookie は管理者セッション Cookie を組み立てる。maxAge が負なら即時失効。
func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     common.AdminCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
