package response

import "net/http"

// 业务状态码与 HTTP 状态码保持一致
const (
	CodeOK              = http.StatusOK
	CodeCreated         = http.StatusCreated
	CodeNoContent       = http.StatusNoContent
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)
