package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/nextbarber-api/internal/httperr"
	"github.com/BruksfildServices01/nextbarber-api/internal/imaging"
	"github.com/BruksfildServices01/nextbarber-api/internal/storage"
)

const (
	uploadField    = "archivo"
	maxUploadBytes = 5 << 20
	webpQuality    = 80
)

// ImageUploader turns multipart uploads into WebP objects in the store.
type ImageUploader struct {
	store storage.ObjectStore
}

func NewImageUploader(store storage.ObjectStore) *ImageUploader {
	return &ImageUploader{store: store}
}

// upload stores the request's image under key and returns its URL. On
// failure the response has already been written.
func (u *ImageUploader) upload(c *gin.Context, key string, maxWidth int) (string, bool) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Debes adjuntar una imagen en el campo 'archivo'")
		return "", false
	}
	if fh.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "La imagen supera el tamaño máximo de 5 MB")
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, "open upload", err)
		return "", false
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		fail(c, "read upload", err)
		return "", false
	}

	body, err := imaging.ToWebP(raw, maxWidth, webpQuality)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			httperr.BadRequest(c, "unsupported_image", "Formato de imagen no soportado (JPEG, PNG o WebP)")
			return "", false
		}
		fail(c, "encode upload", err)
		return "", false
	}

	url, err := u.store.Put(c.Request.Context(), key, imaging.ContentType, body)
	if err != nil {
		fail(c, "store upload", err)
		return "", false
	}
	return url, true
}
