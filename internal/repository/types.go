package repository

// CatalogListFilter 查询商品目录列表的过滤条件
type CatalogListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Category string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   string
	Status   string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// ContactListFilter 查询联系消息列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
}
