package service

import (
	"unicode"
	"unicode/utf8"

	"github.com/autoluxe/internal/config"
)

// bcrypt 只接受 72 字节以内的明文
const bcryptMaxPasswordBytes = 72

// PasswordPolicyError 密码策略校验失败，携带 i18n key 与参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e *PasswordPolicyError) Error() string {
	return e.key
}

// Is 与 ErrWeakPassword 等价
func (e *PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key i18n 消息 key
func (e *PasswordPolicyError) Key() string {
	return e.key
}

// Args i18n 格式化参数
func (e *PasswordPolicyError) Args() []interface{} {
	return e.args
}

func policyViolation(key string, args ...interface{}) error {
	return &PasswordPolicyError{key: key, args: args}
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if len(password) > bcryptMaxPasswordBytes {
		return policyViolation("error.password_max_length", bcryptMaxPasswordBytes)
	}
	if policy.MinLength > 0 && utf8.RuneCountInString(password) < policy.MinLength {
		return policyViolation("error.password_min_length", policy.MinLength)
	}
	if !policy.RequireLetter && !policy.RequireNumber {
		return nil
	}

	hasLetter := false
	hasNumber := false
	for _, r := range password {
		hasLetter = hasLetter || unicode.IsLetter(r)
		hasNumber = hasNumber || unicode.IsDigit(r)
	}
	if policy.RequireLetter && !hasLetter {
		return policyViolation("error.password_require_letter")
	}
	if policy.RequireNumber && !hasNumber {
		return policyViolation("error.password_require_number")
	}
	return nil
}
