// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"portfolio/internal/imaging"
	"portfolio/internal/models"
)

// maxUploadBytes caps a single image upload. Work samples are large but
// anything past this is almost certainly a mistake.
const maxUploadBytes = 20 << 20 // 20 MB

// Upload accepts a multipart image, normalises it, stores it in object
// storage under a time-and-random key, and records it in the uploads
// table. Responds with JSON so the studio script can fill the image URL
// field without a page reload.
func (s *Studio) Upload(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		uploadError(w, http.StatusServiceUnavailable, "Хранилище не настроено")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		uploadError(w, http.StatusRequestEntityTooLarge, "Файл слишком большой")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		uploadError(w, http.StatusBadRequest, "Файл не получен")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		slog.Error("upload read failed", "error", err)
		uploadError(w, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	processed, err := imaging.Process(raw)
	if err != nil {
		uploadError(w, http.StatusUnprocessableEntity, "Файл не является изображением")
		return
	}

	key, err := objectKey(processed.Ext)
	if err != nil {
		slog.Error("upload key generation failed", "error", err)
		uploadError(w, http.StatusInternalServerError, "Ошибка загрузки")
		return
	}

	size := int64(len(processed.Data))
	if err := s.storage.Upload(r.Context(), key, processed.ContentType, bytes.NewReader(processed.Data), size); err != nil {
		slog.Error("upload to storage failed", "key", key, "error", err)
		uploadError(w, http.StatusBadGateway, "Ошибка загрузки в хранилище")
		return
	}

	if _, err := s.uploadStore.Create(&models.Upload{
		Filename:     key[len("projects/"):],
		OriginalName: header.Filename,
		ContentType:  processed.ContentType,
		SizeBytes:    size,
		Key:          key,
	}); err != nil {
		slog.Error("upload record failed", "key", key, "error", err)
		uploadError(w, http.StatusInternalServerError, "Ошибка загрузки")
		return
	}

	slog.Info("image uploaded", "key", key, "size", size, "width", processed.Width)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": s.storage.FileURL(key)})
}

// objectKey builds a storage key under projects/ from the current time in
// milliseconds and a short random suffix, so concurrent uploads never collide.
func objectKey(ext string) (string, error) {
	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("projects/%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(suffix), ext), nil
}

func uploadError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
