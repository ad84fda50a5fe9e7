// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/transport/http/dto"
	"user_backend/internal/feature/user/transport/validation"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Create(ctx context.Context, req dto.UserRequest) (*entity.User, error)
	Update(ctx context.Context, email string, req dto.UserRequest) (*entity.User, error)
	Delete(ctx context.Context, email string) error
	PreviewOne(ctx context.Context, email string) (*dto.UserResponse, error)
	PreviewAll(ctx context.Context) ([]dto.UserResponse, error)
}

// RequestValidator はリクエストボディの検証を定義します。
type RequestValidator interface {
	ValidateCreate(req dto.UserRequest) error
	ValidateUpdate(req dto.UserRequest) error
}

// UserHandler はユーザーCRUDのHTTPリクエストを処理します。
// すべての失敗はrespondErrorを通じてErrorResponseに変換されます。
type UserHandler struct {
	uc        UserUsecase
	validator RequestValidator
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(uc UserUsecase, validator RequestValidator) *UserHandler {
	return &UserHandler{uc: uc, validator: validator}
}

// bindUserRequest はJSONボディをUserRequestにバインドします。
func bindUserRequest(c *gin.Context) (dto.UserRequest, error) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, &domain.Error{Kind: domain.KindInvalidInput, Message: "Malformed request body", Err: err}
	}
	return req, nil
}

// emailParam はクエリパラメータemailを取得して検証します。
func emailParam(c *gin.Context) (string, error) {
	email, present := c.GetQuery("email")
	if err := validation.ValidateEmailParam(email, present); err != nil {
		return "", err
	}
	return email, nil
}

// Create はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はボディなしで201を返却
func (h *UserHandler) Create(c *gin.Context) {
	req, err := bindUserRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.ValidateCreate(req); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.uc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("user created", "id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.Status(http.StatusCreated)
}

// Update はユーザー更新APIエンドポイントを処理します。
// 空白のフィールドは更新されません。成功時はボディなしで200を返却します。
func (h *UserHandler) Update(c *gin.Context) {
	email, err := emailParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	req, err := bindUserRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.ValidateUpdate(req); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.uc.Update(c.Request.Context(), email, req)
	if err != nil {
		respondError(c, err)
		return
	}
	slog.Info("user updated", "id", user.ID, "email", email, "remote_addr", c.ClientIP())
	c.Status(http.StatusOK)
}

// Delete はユーザー削除APIエンドポイントを処理します。成功時は204を返却します。
func (h *UserHandler) Delete(c *gin.Context) {
	email, err := emailParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	}
	slog.Info("user deleted", "email", email, "remote_addr", c.ClientIP())
	c.Status(http.StatusNoContent)
}

// Preview はメールアドレスで1件のユーザーを返します。
func (h *UserHandler) Preview(c *gin.Context) {
	email, err := emailParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.uc.PreviewOne(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// All はすべてのユーザーを返します。0件の場合は204を返却します。
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.uc.PreviewAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(users) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, users)
}
