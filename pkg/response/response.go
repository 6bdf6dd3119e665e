package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError 单个字段的校验失败信息
// 参数校验失败时返回完整的字段错误列表，而不是只返回第一个
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 设计说明：
// 业务错误码按区段映射到固定的HTTP状态码：
//   - 404xx 资源不存在    → 404
//   - 400xx 业务规则冲突  → 409
//   - 409xx 参数校验失败  → 400
//   - 401xx 认证授权失败  → 401
//   - 其他（5xxxx等）     → 500
//
// 用法：
//
//	err := borrowUseCase.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	c.JSON(HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// ValidationFailed 参数校验失败响应
// Data携带完整的字段错误列表（field + message）
func ValidationFailed(c *gin.Context, fields []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    apperrors.ErrCodeInvalidParams,
		Message: "参数校验失败",
		Data:    fields,
	})
}

// HTTPStatus 业务错误码 → HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 40100:
		return http.StatusConflict
	case code >= 40900 && code < 41000:
		return http.StatusBadRequest
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
