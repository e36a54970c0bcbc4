package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// isPostgres 方言判断，未知方言按 sqlite 处理
func isPostgres(db *gorm.DB) bool {
	if db == nil || db.Dialector == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(db.Dialector.Name())) {
	case "postgres", "postgresql":
		return true
	}
	return false
}

// containsPattern 转义通配符后的包含匹配模式
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// whereContains 多列任一包含关键字（不区分大小写）
func whereContains(query *gorm.DB, keyword string, columns ...string) *gorm.DB {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || len(columns) == 0 {
		return query
	}
	operator := "LIKE"
	if isPostgres(query) {
		operator = "ILIKE"
	}
	pattern := containsPattern(keyword)
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		clauses = append(clauses, column+" "+operator+` ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}
