package repository

import "gorm.io/gorm"

const maxPageSize = 100

// applyPagination 分页（页码从 1 开始，页大小上限 maxPageSize，<=0 不分页）
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
