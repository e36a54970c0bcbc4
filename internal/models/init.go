package models

import (
	"strings"

	"github.com/autoluxe/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminEmail    = "admin@autoluxe.local"
	defaultAdminPassword = "admin123"
)

// InitDefaultAdmin 初始化默认管理员账号（已存在管理员时跳过）
func InitDefaultAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = defaultAdminEmail
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing User
	err = DB.Where("email = ?", email).Limit(1).Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != "" {
		// 邮箱已注册为普通用户时直接提升为管理员
		if err := DB.Model(&existing).Update("is_admin", true).Error; err != nil {
			return err
		}
		logger.Warnw("default_admin_promoted", "email", email)
		return nil
	}

	admin := User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		Status:       "active",
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
