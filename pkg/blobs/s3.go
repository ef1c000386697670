package blobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the subset of the S3 presign client the issuer uses.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Issuer issues presigned URLs against one S3 bucket.
type S3Issuer struct {
	Presigner PresignAPI
	Bucket    string
	TTL       time.Duration
}

// NewS3Issuer creates an issuer for the given bucket. A zero ttl falls back
// to DefaultTTL.
func NewS3Issuer(presigner PresignAPI, bucket string, ttl time.Duration) *S3Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &S3Issuer{Presigner: presigner, Bucket: bucket, TTL: ttl}
}

var _ Issuer = (*S3Issuer)(nil)

// IssueUpload presigns a PUT for one object. The content type and metadata
// are baked into the signature, so the client must send them unchanged.
func (i *S3Issuer) IssueUpload(ctx context.Context, objectKey, contentType string, meta map[string]string) (*SignedRequest, error) {
	if objectKey == "" {
		return nil, fmt.Errorf("empty object key")
	}
	input := &s3.PutObjectInput{
		Bucket:   aws.String(i.Bucket),
		Key:      aws.String(objectKey),
		Metadata: meta,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := i.Presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) { o.Expires = i.TTL })
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", objectKey, err)
	}

	headers := map[string]string{}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	for k, v := range meta {
		headers["x-amz-meta-"+k] = v
	}

	return &SignedRequest{
		URL:       req.URL,
		Method:    http.MethodPut,
		Headers:   headers,
		ExpiresIn: int64(i.TTL.Seconds()),
	}, nil
}

// IssueDownload presigns a GET for one object.
func (i *S3Issuer) IssueDownload(ctx context.Context, objectKey string) (*SignedRequest, error) {
	if objectKey == "" {
		return nil, fmt.Errorf("empty object key")
	}

	req, err := i.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(i.Bucket),
		Key:    aws.String(objectKey),
	}, func(o *s3.PresignOptions) { o.Expires = i.TTL })
	if err != nil {
		return nil, fmt.Errorf("failed to presign download for %s: %w", objectKey, err)
	}

	return &SignedRequest{
		URL:       req.URL,
		Method:    http.MethodGet,
		ExpiresIn: int64(i.TTL.Seconds()),
	}, nil
}
