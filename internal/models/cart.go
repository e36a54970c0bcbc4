package models

import (
	"database/sql/driver"
	"encoding/json"
)

// CartProduct 购物车中的商品快照
type CartProduct struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    Money       `json:"price"`
	Stock    int         `json:"stock"`
	Category string      `json:"category"`
	Kind     CatalogKind `json:"kind"`
	Image    *string     `json:"image"` // 仅在读取购物车时附加
}

// CartLine 购物车行
type CartLine struct {
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

// CartLines 购物车行集合（JSON 列）
type CartLines []CartLine

// Value 实现 driver.Valuer 接口
func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (l *CartLines) Scan(value interface{}) error {
	raw, err := scanJSONBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = CartLines{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Cart 购物车（每个用户一条）
type Cart struct {
	Base
	UserID string    `gorm:"type:varchar(24);uniqueIndex;not null" json:"user_id"` // 用户ID
	Items  CartLines `gorm:"type:json" json:"items"`                               // 购物车行
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// FindLine 查找 (item, kind) 对应的行下标
func (c *Cart) FindLine(itemID string, kind CatalogKind) int {
	for i, line := range c.Items {
		if line.Product.ID == itemID && line.Product.Kind == kind {
			return i
		}
	}
	return -1
}

// FindLineByItem 按商品 ID 查找行下标（不区分种类）
func (c *Cart) FindLineByItem(itemID string) int {
	for i, line := range c.Items {
		if line.Product.ID == itemID {
			return i
		}
	}
	return -1
}
