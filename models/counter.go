package models

// Counter backs the sequential ID allocator. One row per namespace; value only
// ever moves forward, via a single atomic upsert-and-increment statement.
type Counter struct {
	ID    uint   `gorm:"primary_key" json:"-"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}
