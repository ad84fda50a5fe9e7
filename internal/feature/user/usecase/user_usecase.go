// Package usecase はuserフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/transport/http/dto"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByEmail は該当ユーザーがいない場合domain.ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Save はIDが空なら新規作成、そうでなければ更新します。
	// メールアドレスが既に使われている場合domain.ErrDuplicateUserを返します。
	Save(ctx context.Context, u *entity.User) (*entity.User, error)

	DeleteByEmail(ctx context.Context, email string) error

	// FindAll はストアの順序ですべてのユーザーを返します。
	FindAll(ctx context.Context) ([]entity.User, error)
}

// UserUsecase はUserRepositoryを用いてユーザーのCRUDを行います。
// 検索から書き込みまでは非アトミックで、競合する重複はemailの一意インデックスが拒否します。
type UserUsecase struct {
	users      UserRepository
	translator *UserTranslator
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, translator *UserTranslator) *UserUsecase {
	return &UserUsecase{users: users, translator: translator}
}

// findUserByEmail はストアでの未検出をemailを含むNotFoundに変換します。
func (u *UserUsecase) findUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NotFound(email)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create はハッシュ化したパスワードで新規ユーザーを登録します。
func (u *UserUsecase) Create(ctx context.Context, req dto.UserRequest) (*entity.User, error) {
	var email string
	if req.Email != nil {
		email = *req.Email
	}

	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.Duplicate(email)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user, err := u.translator.ToRecord(req)
	if err != nil {
		return nil, err
	}
	saved, err := u.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.Duplicate(email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

// Update はemailのユーザーにreqの空白でないフィールドを反映します。
func (u *UserUsecase) Update(ctx context.Context, email string, req dto.UserRequest) (*entity.User, error) {
	user, err := u.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := u.translator.ApplyUpdate(user, req); err != nil {
		return nil, err
	}
	saved, err := u.users.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.Duplicate(user.Email)
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return saved, nil
}

// Delete はemailのユーザーを削除します。
func (u *UserUsecase) Delete(ctx context.Context, email string) error {
	if _, err := u.findUserByEmail(ctx, email); err != nil {
		return err
	}
	if err := u.users.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// PreviewOne はemailのユーザーを返します。
func (u *UserUsecase) PreviewOne(ctx context.Context, email string) (*dto.UserResponse, error) {
	user, err := u.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	out := u.translator.ToResponse(*user)
	return &out, nil
}

// PreviewAll はストアの順序ですべてのユーザーを返します。
func (u *UserUsecase) PreviewAll(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, u.translator.ToResponse(user))
	}
	return out, nil
}
