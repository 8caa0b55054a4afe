// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/olegiv/studio-go/internal/apperr"
	"github.com/olegiv/studio-go/internal/handler/response"
)

const msgNoFile = "No file provided"

// Upload stores the multipart "file" field in the bucket under the
// optional "folder" and returns its public URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Uploader == nil {
		response.Error(w, http.StatusServiceUnavailable, "Uploads are not configured")
		return
	}

	if err := r.ParseMultipartForm(h.cfg.UploadMaxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			response.Error(w, http.StatusBadRequest, msgNoFile)
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, msgNoFile)
		return
	}
	defer func() { _ = file.Close() }()

	res, err := h.cfg.Uploader.Upload(r.Context(), r.FormValue("folder"), header.Filename, file)
	if err != nil {
		response.AppError(w, r, apperr.Upstream(err))
		return
	}

	h.logger.Info("file uploaded", "key", res.Key, "size", header.Size)
	response.Success(w, map[string]any{
		"url": res.URL,
		"key": res.Key,
	})
}
