package models

// ShippingInfo 收货信息
type ShippingInfo struct {
	FirstName  string `gorm:"type:varchar(100);not null" json:"first_name"` // 名
	LastName   string `gorm:"type:varchar(100);not null" json:"last_name"`  // 姓
	Phone      string `gorm:"type:varchar(50);not null" json:"phone"`       // 电话
	Address    string `gorm:"type:varchar(500);not null" json:"address"`    // 地址
	City       string `gorm:"type:varchar(100);not null" json:"city"`       // 城市
	PostalCode string `gorm:"type:varchar(30)" json:"postal_code"`          // 邮编（可选）
	Country    string `gorm:"type:varchar(100)" json:"country"`             // 国家（可选）
}

// Order 订单表
type Order struct {
	Base
	UserID        string       `gorm:"type:varchar(24);index;not null" json:"user_id"`                  // 用户ID
	Shipping      ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`          // 收货信息
	TotalPrice    Money        `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`        // 总价（下单时冻结）
	PaymentMethod string       `gorm:"type:varchar(50);not null" json:"payment_method"`                 // 支付方式
	Status        string       `gorm:"type:varchar(20);index;not null;default:'Pending'" json:"status"` // 订单状态

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`         // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"` // 下单用户（管理端列表附带）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ContainsItem 订单是否包含指定商品
func (o *Order) ContainsItem(itemID string) bool {
	for _, item := range o.Items {
		if item.ItemID == itemID {
			return true
		}
	}
	return false
}
