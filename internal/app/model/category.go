package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/pkg/util"
)

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	IconName    *string   `gorm:"type:varchar(80)" json:"icon_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeCreate derives the slug from the name. No dedupe loop here: a name
// collision must surface as a duplicate-key error so the create path can
// retry with a disambiguated name.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Name)
	}
	return nil
}
