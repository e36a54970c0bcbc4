package models

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewObjectID 生成 24 位十六进制标识（4 字节秒级时间戳 + 8 字节随机数）
func NewObjectID() string {
	var buf [12]byte
	binary.BigEndian.PutUint32(buf[:4], uint32(time.Now().Unix()))
	random := uuid.New()
	copy(buf[4:], random[:8])
	return hex.EncodeToString(buf[:])
}

// IsObjectID 校验标识格式
func IsObjectID(id string) bool {
	return objectIDPattern.MatchString(strings.ToLower(strings.TrimSpace(id)))
}

// NormalizeObjectID 去除空白并转小写
func NormalizeObjectID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Base 通用主键与时间戳
type Base struct {
	ID        string    `gorm:"primaryKey;type:varchar(24)" json:"id"` // 主键
	CreatedAt time.Time `json:"created_at"`                            // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                            // 更新时间
}

// BeforeCreate 写入前补齐主键
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(b.ID) == "" {
		b.ID = NewObjectID()
	}
	return nil
}
