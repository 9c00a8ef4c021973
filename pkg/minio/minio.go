package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

func (m *implMinIO) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.client.ListBuckets(ctx); err != nil {
		m.connected = false
		return handleMinIOError(err, "connect")
	}
	m.connected = true
	return nil
}

func (m *implMinIO) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.connected {
		return NewConnectionError(errors.New("not connected"))
	}
	if _, err := m.client.BucketExists(ctx, m.config.Bucket); err != nil {
		return handleMinIOError(err, "health_check")
	}
	return nil
}

func (m *implMinIO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *implMinIO) bucketExists(ctx context.Context, bucketName string) (bool, error) {
	if err := validateBucketName(bucketName); err != nil {
		return false, err
	}
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, handleMinIOError(err, "bucket_exists")
	}
	return exists, nil
}

func (m *implMinIO) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.bucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.config.Region}); err != nil {
		// lost a creation race with another replica
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return handleMinIOError(err, "make_bucket")
	}
	return nil
}

func (m *implMinIO) UploadFile(ctx context.Context, req *UploadRequest) (*FileInfo, error) {
	if err := validateUploadRequest(req); err != nil {
		return nil, err
	}
	info, err := m.client.PutObject(ctx, req.BucketName, req.ObjectName, req.Reader, req.Size, minio.PutObjectOptions{
		ContentType:  req.ContentType,
		UserMetadata: req.Metadata,
	})
	if err != nil {
		return nil, handleMinIOError(err, "upload_file")
	}
	return &FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		Size:         info.Size,
		ContentType:  req.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		Metadata:     req.Metadata,
	}, nil
}

// DownloadFile returns a reader over the object. The caller closes it.
func (m *implMinIO) DownloadFile(ctx context.Context, req *DownloadRequest) (io.ReadCloser, *FileInfo, error) {
	info, err := m.statObject(ctx, req.BucketName, req.ObjectName)
	if err != nil {
		return nil, nil, err
	}
	object, err := m.client.GetObject(ctx, req.BucketName, req.ObjectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, handleMinIOError(err, "download_file")
	}
	return object, info, nil
}

func (m *implMinIO) GetPresignedDownloadURL(ctx context.Context, req *PresignedURLRequest) (*PresignedURLResponse, error) {
	if err := validatePresignedURLRequest(req); err != nil {
		return nil, err
	}
	params := url.Values{}
	if req.Filename != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", req.Filename))
	}
	u, err := m.client.PresignedGetObject(ctx, req.BucketName, req.ObjectName, req.Expiry, params)
	if err != nil {
		return nil, handleMinIOError(err, "presigned_download_url")
	}
	return &PresignedURLResponse{
		URL:       u.String(),
		ExpiresAt: time.Now().Add(req.Expiry),
	}, nil
}

func (m *implMinIO) statObject(ctx context.Context, bucketName, objectName string) (*FileInfo, error) {
	if err := validateBucketName(bucketName); err != nil {
		return nil, err
	}
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}
	info, err := m.client.StatObject(ctx, bucketName, objectName, minio.StatObjectOptions{})
	if err != nil {
		return nil, handleMinIOError(err, "stat_object")
	}
	return &FileInfo{
		BucketName:   bucketName,
		ObjectName:   objectName,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
		Metadata:     info.UserMetadata,
	}, nil
}

func (m *implMinIO) ListFiles(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if err := validateBucketName(req.BucketName); err != nil {
		return nil, err
	}
	opts := minio.ListObjectsOptions{Prefix: req.Prefix, Recursive: req.Recursive, MaxKeys: req.MaxKeys}

	var files []*FileInfo
	for object := range m.client.ListObjects(ctx, req.BucketName, opts) {
		if object.Err != nil {
			return nil, handleMinIOError(object.Err, "list_files")
		}
		files = append(files, &FileInfo{
			BucketName:   req.BucketName,
			ObjectName:   object.Key,
			Size:         object.Size,
			ETag:         object.ETag,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
		})
		if req.MaxKeys > 0 && len(files) >= req.MaxKeys {
			return &ListResponse{Files: files, TotalCount: len(files), IsTruncated: true}, nil
		}
	}
	return &ListResponse{Files: files, TotalCount: len(files)}, nil
}

// handleMinIOError maps minio-go responses onto StorageError codes.
// It must only be called with a non-nil error.
func handleMinIOError(err error, operation string) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		se := &StorageError{Operation: operation, Cause: err}
		switch resp.Code {
		case "NoSuchBucket":
			se.Code, se.Message = ErrCodeBucketNotFound, resp.BucketName
		case "NoSuchKey":
			se.Code, se.Message = ErrCodeObjectNotFound, resp.Key
		case "AccessDenied":
			se.Code, se.Message = ErrCodePermission, "access denied"
		default:
			se.Code, se.Message = ErrCodeConnection, resp.Code
		}
		return se
	}
	se := NewConnectionError(err)
	se.Operation = operation
	return se
}
