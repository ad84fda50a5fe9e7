// Package validation はユースケース層に渡す前にリクエストボディとクエリパラメータを検証します。
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"user_backend/internal/feature/user/domain"
	"user_backend/internal/feature/user/transport/http/dto"
)

// passwordSpecials はパスワードに使用できる記号です。
const passwordSpecials = "@$!%*?&"

// rule はフィールドに対する制約の1つです。各フィールドの先頭は存在チェックで、
// フィールドが無い場合はこれだけが報告されます。
type rule struct {
	tag     string
	message string
}

type fieldRules struct {
	field string
	value func(dto.UserRequest) *string
	rules []rule
}

// userRules は定義順に評価され、違反も同じ順序で報告されます。
var userRules = []fieldRules{
	{
		field: "name",
		value: func(r dto.UserRequest) *string { return r.Name },
		rules: []rule{
			{"required", "Name is required"},
			{"notblank", "Name cannot be blank"},
			{"min=2,max=50", "Name must be between 2 and 50 characters"},
		},
	},
	{
		field: "email",
		value: func(r dto.UserRequest) *string { return r.Email },
		rules: []rule{
			{"required", "Email is required"},
			{"notblank", "Email cannot be blank"},
			{"omitempty,email", "Please provide a valid email address"},
			{"max=100", "Email cannot exceed 100 characters"},
		},
	},
	{
		field: "password",
		value: func(r dto.UserRequest) *string { return r.Password },
		rules: []rule{
			{"required", "Password is required"},
			{"notblank", "Password cannot be blank"},
			{"min=8,max=255", "Password must be between 8 and 255 characters"},
			{"password_strength", "Password must contain at least one uppercase letter, one lowercase letter, one digit, and one special character"},
		},
	},
}

// Validator はリクエストボディにuserRulesを適用します。
type Validator struct {
	v *validator.Validate
}

// NewValidator はuserRulesが使うカスタムタグを登録したValidatorを生成します。
func NewValidator() *Validator {
	v := validator.New()
	// 登録が失敗するのはタグが空か関数がnilの場合のみ
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("password_strength", passwordStrength)
	return &Validator{v: v}
}

// ValidateCreate はすべてのフィールドを検証し、違反をすべて収集します。
func (val *Validator) ValidateCreate(req dto.UserRequest) error {
	return val.validate(req, false)
}

// ValidateUpdate は空白でない値を持つフィールドのみを検証します。
// それ以外のフィールドは更新されません。
func (val *Validator) ValidateUpdate(req dto.UserRequest) error {
	return val.validate(req, true)
}

func (val *Validator) validate(req dto.UserRequest, partial bool) error {
	var details []string
	for _, fr := range userRules {
		value := fr.value(req)
		if partial && (value == nil || strings.TrimSpace(*value) == "") {
			continue
		}
		if value == nil {
			details = append(details, fr.field+": "+fr.rules[0].message)
			continue
		}
		for _, r := range fr.rules[1:] {
			if err := val.v.Var(*value, r.tag); err != nil {
				details = append(details, fr.field+": "+r.message)
			}
		}
	}
	if len(details) > 0 {
		return domain.ValidationFailed(details)
	}
	return nil
}

// passwordStrength は8文字以上で、小文字・大文字・数字・記号をそれぞれ1つ以上含み、
// それ以外の文字を含まないことを要求します。
func passwordStrength(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, c):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
