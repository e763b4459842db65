package shared

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseDate(t *testing.T) {
	if parsed, err := ParseDate("2024-08-01"); err != nil || parsed.Format("2006-01-02") != "2024-08-01" {
		t.Fatalf("plain date: %v %v", parsed, err)
	}
	if parsed, err := ParseDate("2024-08-01T10:30:00Z"); err != nil || parsed.Hour() != 10 {
		t.Fatalf("rfc3339: %v %v", parsed, err)
	}
	if _, err := ParseDate("01/08/2024"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
	if parsed, err := ParseDate(""); err != nil || !parsed.IsZero() {
		t.Fatalf("empty input: %v %v", parsed, err)
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=500&offset=20", nil)
	page := ParsePagination(req, 50, 200)
	if page.Limit != 200 || page.Offset != 20 {
		t.Fatalf("page = %+v", page)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=abc", nil)
	page = ParsePagination(req, 50, 200)
	if page.Limit != 50 || page.Offset != 0 {
		t.Fatalf("defaults: %+v", page)
	}
}

func TestValidatorSortsAndRejects(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Add("email", "must be valid")
	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if issues[0].Field != "email" || issues[1].Field != "name" {
		t.Fatalf("issues = %+v", issues)
	}

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("Reject must report issues")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Success || envelope.Error.Code != "validation_error" || envelope.RequestID != "req-1" {
		t.Fatalf("envelope = %+v", envelope)
	}
}

func TestValidatorCleanPassesThrough(t *testing.T) {
	v := NewValidator()
	v.Required("name", "ok", "name is required")
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}
}

type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func buildUpload(name, contentType string, data []byte) upload {
	return upload{Name: name, ContentType: contentType, Data: data}
}

func multipartFiles(t *testing.T, names map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, data := range names {
		part, err := writer.CreateFormFile("documents", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["documents"]
}

func TestParseUploads(t *testing.T) {
	files := multipartFiles(t, map[string][]byte{"nota.pdf": []byte("%PDF-1.4 data")})
	uploads, err := ParseUploads(files, buildUpload)
	if err != nil {
		t.Fatalf("ParseUploads: %v", err)
	}
	if len(uploads) != 1 || uploads[0].Name != "nota.pdf" || len(uploads[0].Data) == 0 {
		t.Fatalf("uploads = %+v", uploads)
	}
}

func TestParseUploadsRejectsEmptyFile(t *testing.T) {
	files := multipartFiles(t, map[string][]byte{"vacio.txt": nil})
	if _, err := ParseUploads(files, buildUpload); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestSanitizeUploadedFileName(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd": "passwd",
		"  informe.pdf  ":  "informe.pdf",
		"":                 "document.bin",
	}
	for in, want := range cases {
		if got := SanitizeUploadedFileName(in); got != want {
			t.Errorf("SanitizeUploadedFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
