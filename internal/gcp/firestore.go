package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/fileupload/internal/models"
	"google.golang.org/api/option"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
// An empty projectID falls back to detection from the environment or credentials.
func NewFirestoreClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// FirestoreMetadataStore records upload metadata as Firestore documents.
type FirestoreMetadataStore struct {
	client *firestore.Client
}

func NewFirestoreMetadataStore(client *firestore.Client) *FirestoreMetadataStore {
	return &FirestoreMetadataStore{client: client}
}

// AddRecord creates a new document with an auto-generated ID and returns that ID.
func (s *FirestoreMetadataStore) AddRecord(ctx context.Context, collection string, rec models.UploadRecord) (string, error) {
	docRef, _, err := s.client.Collection(collection).Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create metadata document: %w", err)
	}
	return docRef.ID, nil
}

func (s *FirestoreMetadataStore) Close() error {
	return s.client.Close()
}
