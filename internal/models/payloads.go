package models

// These structs define the JSON bodies returned by the upload function.

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of an explicitly handled failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
