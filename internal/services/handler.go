package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/Lllllllleong/fileupload/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

const (
	fieldUploadedBy = "uploadedBy"
	fieldFile       = "file"

	// Parts beyond this are spooled to temporary files by the multipart reader.
	maxFormMemory = 32 << 20
)

// ServeHTTP is the HTTP surface of the upload function.
func (f *UploaderFunction) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Only POST allowed"})
		return
	}

	req, cleanup := extractUpload(r)
	defer cleanup()

	res, err := f.Process(r.Context(), req)
	switch {
	case errors.Is(err, ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Missing uploadedBy or file"})
	case errors.Is(err, ErrMissingConfig):
		slog.Error("BUCKET_NAME or COLLECTION_NAME is not set")
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Missing environment configuration"})
	case err != nil:
		// Already logged with context inside Process.
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// extractUpload reads the uploadedBy field and the file part. Anything that
// cannot be read is left empty so that Process reports the missing field.
func extractUpload(r *http.Request) (*models.UploadRequest, func()) {
	cleanup := func() {}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		slog.Warn("Could not parse multipart form", "error", err)
		return nil, cleanup
	}
	cleanup = func() { _ = r.MultipartForm.RemoveAll() }

	req := &models.UploadRequest{UploadedBy: r.PostFormValue(fieldUploadedBy)}

	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		return req, cleanup
	}
	cleanup = func() {
		_ = file.Close()
		_ = r.MultipartForm.RemoveAll()
	}

	req.Filename = rawFilename(header)
	req.Size = header.Size
	req.ContentType = header.Header.Get("Content-Type")
	if req.ContentType == "" {
		req.ContentType = sniffContentType(file)
	}
	req.Content = file
	return req, cleanup
}

// rawFilename returns the filename parameter exactly as the client sent it.
// FileHeader.Filename has already been reduced to its base name.
func rawFilename(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err != nil || params["filename"] == "" {
		return header.Filename
	}
	return params["filename"]
}

// sniffContentType detects the type of an undeclared part and rewinds it.
func sniffContentType(file multipart.File) string {
	mt, err := mimetype.DetectReader(file)
	if _, serr := file.Seek(0, io.SeekStart); serr != nil {
		slog.Warn("Could not rewind file after content detection", "error", serr)
	}
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
