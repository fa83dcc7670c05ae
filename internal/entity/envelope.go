package entity

// APIResponse is the envelope shape shared by every JSON endpoint:
// {success:true, data:...} or {success:false, error:{code, message}}.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func Fail(code int, message string) APIResponse {
	return APIResponse{Success: false, Error: &APIError{Code: code, Message: message}}
}
