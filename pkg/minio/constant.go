package minio

import "time"

const (
	maxIdleConns        = 100
	maxIdleConnsPerHost = 100
	idleConnTimeout     = 90 * time.Second
	disableCompression  = true
)

const (
	DefaultEndpointPort = ":9000"
	MaxPresignedExpiry  = 7 * 24 * time.Hour
	MaxFileSizeBytes    = 5 * 1024 * 1024 * 1024

	ContentTypeJSON  = "application/json"
	ContentTypeJSONL = "application/x-ndjson"

	URLScheme = "s3://"
)
