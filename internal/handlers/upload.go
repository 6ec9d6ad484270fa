package handlers

import (
	"errors"
	"io"
	"net/http"

	"planit/internal/services"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

const (
	uploadField = "file"
	// maxUploadBytes is the largest asset any kind accepts, plus one byte so
	// oversized files are still detected.
	maxUploadBytes = 10<<20 + 1
)

// readUpload reads the multipart file field. A request without a file yields
// an empty Upload. The content type is sniffed from the bytes.
func readUpload(c echo.Context) (services.Upload, error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return services.Upload{}, nil
		}
		return services.Upload{}, badRequest("Invalid multipart form")
	}

	file, err := header.Open()
	if err != nil {
		return services.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return services.Upload{}, err
	}

	return services.Upload{
		Data:        data,
		ContentType: mimetype.Detect(data).String(),
		Filename:    header.Filename,
	}, nil
}
