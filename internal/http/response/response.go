package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 接口统一信封，status_code 与 HTTP 状态码一致
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 列表接口信封
type PageResponse struct {
	Response
	Pagination Pagination `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination pageSize 非正数时总页数为 0
func BuildPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return p
}

func write(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(httpStatus(code), Response{StatusCode: code, Msg: msg, Data: data})
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	write(c, CodeOK, "success", data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	write(c, CodeCreated, "created", data)
}

// NoContent 204，无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// SuccessWithPage 200 并附带分页信息
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Response:   Response{StatusCode: CodeOK, Msg: "success", Data: data},
		Pagination: pagination,
	})
}

// Error 错误响应，data 中带上 request_id
func Error(c *gin.Context, code int, msg string) {
	write(c, code, msg, attachRequestID(c, nil))
}

// ErrorWithData 错误响应并附带明细（如字段校验错误）
func ErrorWithData(c *gin.Context, code int, msg string, data interface{}) {
	write(c, code, msg, attachRequestID(c, data))
}

func httpStatus(code int) int {
	if code < http.StatusContinue || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	if c == nil {
		return data
	}
	requestID := c.GetString("request_id")
	if requestID == "" {
		return data
	}
	var fields map[string]interface{}
	switch v := data.(type) {
	case nil:
		return gin.H{"request_id": requestID}
	case gin.H:
		fields = v
	case map[string]interface{}:
		fields = v
	default:
		return gin.H{"request_id": requestID, "data": data}
	}
	if _, exists := fields["request_id"]; !exists {
		fields["request_id"] = requestID
	}
	return fields
}
