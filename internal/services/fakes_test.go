package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/Lllllllleong/fileupload/internal/models"
	"github.com/stretchr/testify/require"
)

type storedObject struct {
	Data        []byte
	ContentType string
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]storedObject
	calls   int
	err     error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string]storedObject{}}
}

func (s *fakeObjectStore) PutObject(_ context.Context, bucket, key string, r io.Reader, _ int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[bucket+"/"+key] = storedObject{Data: data, ContentType: contentType}
	return nil
}

type recordedDoc struct {
	Collection string
	Record     models.UploadRecord
}

type fakeMetadataStore struct {
	mu      sync.Mutex
	records []recordedDoc
	calls   int
	err     error
}

func (s *fakeMetadataStore) AddRecord(_ context.Context, collection string, rec models.UploadRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	s.records = append(s.records, recordedDoc{Collection: collection, Record: rec})
	return fmt.Sprintf("doc-%d", len(s.records)), nil
}

type filePart struct {
	Field       string
	Filename    string
	ContentType string // empty omits the header
	Data        []byte
}

// newMultipartRequest builds a multipart/form-data request from the given
// text fields and optional file part.
func newMultipartRequest(t *testing.T, method string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		if file.ContentType != "" {
			h.Set("Content-Type", file.ContentType)
		}
		pw, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(file.Data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
