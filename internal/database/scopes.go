package database

import (
	"gorm.io/gorm"
)

// VisiblePeople restricts a query to non-deleted people of the owner.
// table is the name or alias of the people table in the query.
func VisiblePeople(table string, ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ? AND "+table+".is_deleted = ?", ownerID, false)
	}
}
