package usecase

import (
	"strings"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/transport/http/dto"
)

// PasswordHasher は平文パスワードのハッシュ化を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/password）ではなくコンシューマー（usecase）が定義します。
type PasswordHasher interface {
	Hash(raw *string) (string, error)
}

// UserTranslator はリクエスト・レスポンスとentity.Userの相互変換を行います。
type UserTranslator struct {
	hasher PasswordHasher
}

// NewUserTranslator はhasherでパスワードをハッシュ化するUserTranslatorを生成します。
func NewUserTranslator(hasher PasswordHasher) *UserTranslator {
	return &UserTranslator{hasher: hasher}
}

// ToRecord はreqから新しいエンティティを生成します。
// 名前とメールアドレスはそのままコピーし、トリムは空白判定にのみ使います。
func (t *UserTranslator) ToRecord(req dto.UserRequest) (*entity.User, error) {
	if isBlank(req.Name) || isBlank(req.Email) || isBlank(req.Password) {
		return nil, domain.InvalidInput("All fields are required")
	}
	hashed, err := t.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		Name:     *req.Name,
		Email:    *req.Email,
		Password: hashed,
	}, nil
}

// ApplyUpdate はreqの空白でないフィールドだけをuに反映します。
// それ以外のフィールドは変更しません。エラー時はuを変更しません。
func (t *UserTranslator) ApplyUpdate(u *entity.User, req dto.UserRequest) error {
	hashed := u.Password
	if !isBlank(req.Password) {
		var err error
		if hashed, err = t.hasher.Hash(req.Password); err != nil {
			return err
		}
	}
	if !isBlank(req.Name) {
		u.Name = *req.Name
	}
	if !isBlank(req.Email) {
		u.Email = *req.Email
	}
	u.Password = hashed
	return nil
}

// ToResponse はuをレスポンス形式に変換します。ハッシュ値も含みます。
func (t *UserTranslator) ToResponse(u entity.User) dto.UserResponse {
	name, email := u.Name, u.Email
	return dto.UserResponse{
		ID:           u.ID,
		PersonFields: dto.PersonFields{Name: &name, Email: &email},
		Password:     u.Password,
	}
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
