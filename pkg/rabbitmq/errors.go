package rabbitmq

import "errors"

var (
	ErrURLRequired       = errors.New("rabbitmq: url is required")
	ErrConnectionTimeout = errors.New("rabbitmq: connection timeout")
	ErrNotConnected      = errors.New("rabbitmq: not connected")
)
