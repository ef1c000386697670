// Package blobs issues presigned URLs for document uploads and downloads.
// Bytes never pass through the API servers; clients talk to the object store
// directly with a short-lived signed request.
package blobs

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL bounds how long an issued URL stays usable.
const DefaultTTL = 15 * time.Minute

// SignedRequest is one issued URL plus everything the client needs to use it.
type SignedRequest struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in_seconds"`
}

// Issuer hands out presigned requests against the document bucket.
type Issuer interface {
	IssueUpload(ctx context.Context, objectKey, contentType string, meta map[string]string) (*SignedRequest, error)
	IssueDownload(ctx context.Context, objectKey string) (*SignedRequest, error)
}

// ObjectKey builds the bucket key for a document attached to an entity.
func ObjectKey(entityType, entityID, documentID, fileName string) (string, error) {
	if entityType == "" || entityID == "" || documentID == "" {
		return "", fmt.Errorf("incomplete entity reference for object key")
	}
	fileName = strings.ReplaceAll(fileName, "/", "_")
	if fileName == "" {
		fileName = "document"
	}
	return fmt.Sprintf("%s/%s/%s/%s", entityType, entityID, documentID, fileName), nil
}
