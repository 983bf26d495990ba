package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by the authenticated user. History
// records are never shared between users.
func Scope(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
