package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName returns the dialect name, defaulting to sqlite.
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// buildSearchCondition builds a case-insensitive LIKE over the given columns
// and returns the condition plus its argument count.
func buildSearchCondition(db *gorm.DB, columns []string) (string, int) {
	operator := likeOperatorByDialect(dbDialectName(db))
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	return strings.Join(parts, " OR "), len(parts)
}

// jsonArrayContainsCondition matches an ID inside a JSON array column
// (e.g. [1,2,3]). Boundary matching avoids 1 hitting 11.
func jsonArrayContainsCondition(column string, id uint) (string, []interface{}) {
	exact := fmt.Sprintf("[%d]", id)
	prefix := fmt.Sprintf("[%d,%%", id)
	middle := fmt.Sprintf("%%,%d,%%", id)
	suffix := fmt.Sprintf("%%,%d]", id)
	condition := fmt.Sprintf("(%s = ? OR %s LIKE ? OR %s LIKE ? OR %s LIKE ?)", column, column, column, column)
	return condition, []interface{}{exact, prefix, middle, suffix}
}

// repeatLikeArgs repeats the LIKE argument count times.
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
