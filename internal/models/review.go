package models

// Review 商品评价
type Review struct {
	Base
	UserID  string `gorm:"type:varchar(24);index;not null" json:"user_id"` // 评价用户
	ItemID  string `gorm:"type:varchar(24);index;not null" json:"item_id"` // 商品ID
	Rating  int    `gorm:"not null" json:"rating"`                         // 评分 1-5
	Comment string `gorm:"type:text" json:"comment"`                       // 评价内容

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
