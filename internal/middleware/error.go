package middleware

// ErrorResponse is the error envelope written by middleware that answer a
// request themselves (auth, timeout, recovery).
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}
