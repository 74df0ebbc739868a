package models

import (
	"io"
	"time"
)

// TimestampLayout renders a UTC instant as ISO-8601 with microseconds.
// The trailing "Z" is appended by FormatTimestamp, not by the layout.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// UploadRequest is the validated input of a single upload invocation.
// It lives only for the duration of the request.
type UploadRequest struct {
	UploadedBy  string
	Filename    string
	ContentType string
	Size        int64 // -1 when unknown
	Content     io.Reader
}

// UploadRecord is the metadata document written once per successful upload.
// Its identity is the auto-generated key assigned by the document store.
type UploadRecord struct {
	Filename   string `firestore:"filename" bson:"filename" json:"filename"`
	UploadedBy string `firestore:"uploadedBy" bson:"uploadedBy" json:"uploadedBy"`
	Timestamp  string `firestore:"timestamp" bson:"timestamp" json:"timestamp"`
}

// FormatTimestamp converts t to UTC and always suffixes it with "Z".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout) + "Z"
}
