package dto

// Response is the envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody carries a machine-readable code and a human message
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries pagination info for list endpoints
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// OK wraps a successful payload
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKPaged wraps a successful list payload with pagination meta
func OKPaged(data interface{}, page, pageSize int, total int64) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Page: page, PageSize: pageSize, Total: total},
	}
}

// Err wraps a failure
func Err(code, message string) Response {
	return Response{Success: false, Error: &ErrorBody{Code: code, Message: message}}
}
