package models

import "time"

// User 用户表
type User struct {
	Base
	Name               string     `gorm:"type:varchar(100);not null" json:"name"`              // 昵称
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash       string     `gorm:"not null" json:"-"`                                   // 密码哈希（不返回给前端）
	IsAdmin            bool       `gorm:"not null;default:false" json:"is_admin"`              // 是否管理员
	Status             string     `gorm:"type:varchar(20);default:'active'" json:"status"`     // 账号状态
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"`                         // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time `json:"-"`                                                   // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time `json:"last_login_at"`                                       // 最后登录时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
