package minio

import (
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Config is the connection configuration for a MinIO endpoint.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

type implMinIO struct {
	client    *minio.Client
	config    Config
	mu        sync.RWMutex
	connected bool
}

// FileInfo describes a stored object.
type FileInfo struct {
	BucketName   string            `json:"bucket_name"`
	ObjectName   string            `json:"object_name"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type"`
	ETag         string            `json:"etag"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type UploadRequest struct {
	BucketName  string
	ObjectName  string
	Reader      io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

type DownloadRequest struct {
	BucketName string
	ObjectName string
}

type ListRequest struct {
	BucketName string
	Prefix     string
	Recursive  bool
	// MaxKeys of zero lists everything under the prefix.
	MaxKeys int
}

type ListResponse struct {
	Files       []*FileInfo `json:"files"`
	IsTruncated bool        `json:"is_truncated"`
	TotalCount  int         `json:"total_count"`
}

type PresignedURLRequest struct {
	BucketName string
	ObjectName string
	Expiry     time.Duration
	// Filename, when set, is sent back as the attachment name.
	Filename string
}

type PresignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ObjectURL is a parsed s3://bucket/object reference.
type ObjectURL struct {
	Bucket string
	Object string
}
