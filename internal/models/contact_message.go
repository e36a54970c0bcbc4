package models

// ContactMessage 联系我们留言
type ContactMessage struct {
	Base
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Subject string `gorm:"type:varchar(255);not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
