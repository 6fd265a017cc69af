package dto

// Response is the uniform envelope for every endpoint. Message carries the
// payload on success and a human-readable string on failure.
type Response struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}

// OK wraps a successful payload.
func OK(message any) Response {
	return Response{Success: true, Message: message}
}

// Fail wraps a failure message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
