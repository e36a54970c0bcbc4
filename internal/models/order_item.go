package models

// OrderItem 订单项表（名称与价格为下单时快照）
type OrderItem struct {
	Base
	OrderID  string      `gorm:"type:varchar(24);index;not null" json:"order_id"`    // 订单ID
	ItemID   string      `gorm:"type:varchar(24);index;not null" json:"item_id"`     // 商品ID
	Kind     CatalogKind `gorm:"type:varchar(30);not null" json:"kind"`              // 商品种类
	Name     string      `gorm:"type:varchar(255);not null" json:"name"`             // 商品名称快照
	Price    Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	Quantity int         `gorm:"not null" json:"quantity"`                           // 数量
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
