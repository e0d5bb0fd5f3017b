package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/pkg/util"
)

type Branch struct {
	ID           string    `gorm:"type:uuid;primarykey" json:"id"`
	PlaceID      string    `gorm:"type:uuid;not null;index" json:"place_id"`
	Place        *Place    `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Name         string    `gorm:"not null" json:"name"`
	Slug         string    `gorm:"uniqueIndex" json:"slug"`
	Description  *string   `gorm:"type:text" json:"description"`
	Phone        *string   `gorm:"type:varchar(30)" json:"phone"`
	WebsiteURL   *string   `json:"website_url"`
	AddressLine1 *string   `json:"address_line1"`
	AddressLine2 *string   `json:"address_line2"`
	City         *string   `gorm:"index" json:"city"`
	State        *string   `json:"state"`
	PostalCode   *string   `json:"postal_code"`
	Country      *string   `json:"country"`
	Latitude     *float64  `gorm:"type:decimal(10,8)" json:"latitude"`  // WGS84
	Longitude    *float64  `gorm:"type:decimal(11,8)" json:"longitude"` // WGS84
	PriceRange   *int      `json:"price_range"`
	IsMainBranch bool      `gorm:"default:false;index" json:"is_main_branch"` // a place's first branch is always main
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Slug == "" {
		base := util.Slugify(b.Name)
		if b.City != nil && *b.City != "" {
			base = util.Slugify(*b.City + " " + b.Name)
		}
		slug, err := dedupeSlug(tx, &Branch{}, base, "")
		if err != nil {
			return err
		}
		b.Slug = slug
	}
	return nil
}
