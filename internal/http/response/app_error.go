package response

import "errors"

// AppError 携带响应状态码的错误，Code 即 HTTP 状态码
type AppError struct {
	Code    int
	Message string
	Err     error
}

// WrapError 用状态码和对外消息包装底层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// IsServerError 5xx
func (e *AppError) IsServerError() bool {
	return e != nil && e.Code >= CodeInternal
}

// AsAppError 在错误链上查找 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
