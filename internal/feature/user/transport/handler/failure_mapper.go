package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/transport/http/dto"
)

// unexpectedMessage は分類外のエラーで返す唯一のメッセージです。
const unexpectedMessage = "An unexpected error occurred"

// MapFailure はerrをHTTPステータスとpathのエラーレスポンスに変換します。
func MapFailure(err error, path string) (int, dto.ErrorResponse) {
	res := dto.ErrorResponse{Path: path, Timestamp: time.Now().UTC()}

	var de *domain.Error
	if !errors.As(err, &de) {
		de = &domain.Error{Kind: domain.KindUnclassified}
	}

	switch de.Kind {
	case domain.KindUserNotFound:
		res.Status, res.Error, res.Message = http.StatusNotFound, "Not Found", de.Message
	case domain.KindDuplicateUser:
		res.Status, res.Error, res.Message = http.StatusConflict, "Conflict", de.Message
	case domain.KindValidationFailed:
		res.Status, res.Error, res.Message = http.StatusBadRequest, "Validation Failed", "Invalid input data"
		res.Details = de.Details
	case domain.KindInvalidInput:
		res.Status, res.Error, res.Message = http.StatusBadRequest, "Bad Request", de.Message
	case domain.KindMissingParameter:
		res.Status, res.Error = http.StatusBadRequest, "Bad Request"
		res.Message = "Missing required parameter: " + de.Param
	default:
		res.Status, res.Error, res.Message = http.StatusInternalServerError, "Internal Server Error", unexpectedMessage
	}
	return res.Status, res
}

// respondError はerrをログに出力し、変換したレスポンスを返して処理を中断します。
func respondError(c *gin.Context, err error) {
	status, res := MapFailure(err, c.Request.URL.Path)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "path", res.Path, "remote_addr", c.ClientIP())
	} else {
		slog.Warn("request rejected", "kind", domain.KindOf(err).String(), "error", err, "path", res.Path, "remote_addr", c.ClientIP())
	}
	c.AbortWithStatusJSON(status, res)
}

// NoRoute は未定義のパスに404のエラーレスポンスを返します。
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Status:    http.StatusNotFound,
		Error:     "Not Found",
		Message:   "No handler found for " + c.Request.Method + " " + c.Request.URL.Path,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}

// NoMethod は未対応のメソッドに405のエラーレスポンスを返します。
func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
		Status:    http.StatusMethodNotAllowed,
		Error:     "Method Not Allowed",
		Message:   "Request method '" + c.Request.Method + "' is not supported",
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
	})
}

// Recovery はハンドラーのpanicを500のエラーレスポンスに変換します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		respondError(c, fmt.Errorf("panic: %v", recovered))
	})
}
