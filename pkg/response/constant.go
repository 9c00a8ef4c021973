package response

const (
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"

	MessageSuccess         = "Success"
	MessageUnauthorized    = "Unauthorized"
	MessageTooManyRequests = "Too many requests"
	MessageInternalError   = "Something went wrong"

	CodeUnauthorized    = 401
	CodeTooManyRequests = 429
	CodeInternalError   = 500
)
