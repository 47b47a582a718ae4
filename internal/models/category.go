package models

import "database/sql"

// Category mirrors the categories table.
type Category struct {
	CategoryID   string         `db:"category_id"`
	UserID       string         `db:"user_id"`
	Name         string         `db:"name"`
	CategoryType string         `db:"category_type"`
	Color        string         `db:"color"`
	Icon         sql.NullString `db:"icon"`
	ParentID     sql.NullString `db:"parent_id"`
	IsSystem     bool           `db:"is_system"`
	AuditFields
}
