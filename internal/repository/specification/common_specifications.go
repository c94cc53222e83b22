package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByIdentity filters by the owning identity
type ByIdentity struct {
	Identity string
}

func (s ByIdentity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("identity = ?", s.Identity)
}

// ByTitle filters by exact title
type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}
