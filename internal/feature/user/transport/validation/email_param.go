package validation

import (
	"regexp"
	"strings"

	"user_backend/internal/feature/user/domain"
)

var emailParamPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmailParam は更新・削除・参照で使うクエリパラメータemailを検証します。
// パラメータがクエリに存在しない場合presentはfalseです。
func ValidateEmailParam(email string, present bool) error {
	if !present {
		return domain.MissingParameter("email")
	}
	if strings.TrimSpace(email) == "" {
		return domain.InvalidInput("Email parameter is required and cannot be empty")
	}
	if !emailParamPattern.MatchString(email) {
		return domain.InvalidInput("Invalid email format")
	}
	return nil
}
