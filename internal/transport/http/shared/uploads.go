package shared

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	maxUploads     = 5
	maxUploadBytes = 2 * 1024 * 1024
)

// ParseUploads reads multipart files into memory, enforcing count and
// per-file size caps. build turns the raw parts into the caller's upload
// type so employee documents and leave attachments share one path.
func ParseUploads[T any](files []*multipart.FileHeader, build func(name, contentType string, data []byte) T) ([]T, error) {
	if len(files) > maxUploads {
		return nil, fmt.Errorf("too many documents")
	}

	out := make([]T, 0, len(files))
	for _, header := range files {
		if header == nil {
			continue
		}
		if header.Size > maxUploadBytes {
			return nil, fmt.Errorf("document exceeds maximum size")
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document")
		}
		content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		closeErr := file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read document")
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close document")
		}
		if int64(len(content)) > maxUploadBytes {
			return nil, fmt.Errorf("document exceeds maximum size")
		}
		if len(content) == 0 {
			return nil, fmt.Errorf("empty document is not allowed")
		}

		fileName := SanitizeUploadedFileName(header.Filename)
		contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}
		out = append(out, build(fileName, contentType, content))
	}
	return out, nil
}

func SanitizeUploadedFileName(name string) string {
	cleaned := strings.TrimSpace(filepath.Base(name))
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	if cleaned == "" {
		return "document.bin"
	}
	return cleaned
}

func ServeAttachment(w http.ResponseWriter, fileName, contentType string, data []byte) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		slog.Warn("attachment write failed", "err", err)
	}
}
