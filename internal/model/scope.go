package model

// Scope is the authenticated caller of a request.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SystemScope is used for runs started by the consumer or the scheduler.
var SystemScope = Scope{UserID: "system", Username: "system", Role: "SYSTEM"}
