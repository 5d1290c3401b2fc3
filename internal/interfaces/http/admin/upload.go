package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mkt0301/food-reviews-services/api/internal/interfaces/http/common"
)

// allowedUploadTypes maps accepted content types to their stored extension.
var allowedUploadTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var uploadNamePattern = regexp.MustCompile(`[^a-z0-9]+`)

func (h *Handler) uploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// multipart のオーバーヘッド分だけ上限に余裕を持たせ、
		// ファイル本体のサイズは読み取り後に厳密に検査する。
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxUploadBytes+(1<<20))

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
				common.WriteError(h.logger, w, http.StatusBadRequest, "File too large. Maximum size is 5MB")
				return
			}
			common.WriteError(h.logger, w, http.StatusBadRequest, "Missing file")
			return
		}
		defer file.Close()

		contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
		if idx := strings.Index(contentType, ";"); idx >= 0 {
			contentType = strings.TrimSpace(contentType[:idx])
		}
		ext, ok := allowedUploadTypes[strings.ToLower(contentType)]
		if !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
			return
		}

		data, err := io.ReadAll(io.LimitReader(file, common.MaxUploadBytes+1))
		if err != nil {
			h.logger.Printf("admin upload read failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Upload failed")
			return
		}
		if len(data) > common.MaxUploadBytes {
			common.WriteError(h.logger, w, http.StatusBadRequest, "File too large. Maximum size is 5MB")
			return
		}

		key := buildUploadKey(time.Now(), header.Filename, ext)

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		if err := h.blobs.Put(ctx, key, data, contentType); err != nil {
			h.logger.Printf("admin upload store failed key=%s err=%v", key, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Upload failed")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"path": key})
	}
}

// buildUploadKey はタイムスタンプとサニタイズ済みファイル名からキーを採番する。
// 同一ミリ秒の衝突はストレージ側の「既存キーを上書きしない」制約で検出される。
func buildUploadKey(now time.Time, filename, ext string) string {
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	base = uploadNamePattern.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if len(base) > 50 {
		base = strings.Trim(base[:50], "-")
	}
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), base, ext)
}
