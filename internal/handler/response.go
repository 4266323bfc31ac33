package handler

import (
	"errors"
	"net/http"

	"github.com/barakahchain/charity-platform-sub001/internal/logic"
	"github.com/barakahchain/charity-platform-sub001/internal/metadata"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// ErrorResponseFromErr 根据业务错误映射HTTP状态码
// 调用方凭状态码区分参数错误、项目不存在、重复交易和暂时性故障
func ErrorResponseFromErr(c *gin.Context, err error) {
	ErrorResponse(c, statusFromErr(err), err.Error())
}

// statusFromErr 业务错误到状态码
func statusFromErr(err error) int {
	var unavailable *metadata.UnavailableError

	switch {
	case errors.Is(err, logic.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, logic.ErrInvalidArgument),
		errors.Is(err, logic.ErrProjectNotActive):
		return http.StatusBadRequest
	case errors.Is(err, logic.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
