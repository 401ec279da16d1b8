package api

import (
	"io"
	"net/http"

	"blueline/reservehub/internal/common"
)

// FileDownloadHandler handles GET /api/v1/files?token=...
// The token is the only credential; signed URLs are shared as-is.
func FileDownloadHandler(storage *common.StorageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Missing token", http.StatusBadRequest)
			return
		}

		path, err := storage.ValidateDownloadToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusForbidden)
			return
		}

		f, err := storage.Open(path)
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", "application/octet-stream")
		if _, err := io.Copy(w, f); err != nil {
			return
		}
	}
}
