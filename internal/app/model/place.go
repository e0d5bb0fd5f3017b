package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/pkg/util"
)

// StringArray stores a JSON string list in a single column. Kept as JSON
// rather than text[] so the sqlite test database can scan it.
type StringArray []string

// Value implements database/sql/driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements database/sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, okStr := value.(string); okStr {
			bytes = []byte(str)
		} else {
			return errors.New("failed to scan StringArray")
		}
	}

	return json.Unmarshal(bytes, s)
}

type Place struct {
	ID          string      `gorm:"type:uuid;primarykey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Slug        string      `gorm:"uniqueIndex" json:"slug"` // URL identifier, derived from name
	Description *string     `gorm:"type:text" json:"description"`
	CategoryID  *uint       `gorm:"index" json:"category_id"`
	Category    *Category   `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Tags        StringArray `gorm:"type:json" json:"tags"`
	OwnerID     *string     `gorm:"type:uuid;index" json:"owner_id"`
	IsActive    bool        `gorm:"default:true;index" json:"is_active"` // soft disable instead of delete
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Branches []Branch `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"branches,omitempty"`
}

func (Place) TableName() string {
	return "places"
}

// BeforeCreate assigns the id and derives a unique slug, appending a
// counter suffix on collision.
func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		slug, err := dedupeSlug(tx, &Place{}, util.Slugify(p.Name), "")
		if err != nil {
			return err
		}
		p.Slug = slug
	}
	return nil
}

// dedupeSlug finds the first free slug for a model, trying the base first
// and then "-2", "-3", and so on. excludeID skips the row being updated.
func dedupeSlug(tx *gorm.DB, model interface{}, baseSlug, excludeID string) (string, error) {
	if baseSlug == "" {
		baseSlug = "untitled"
	}

	slug := baseSlug
	counter := 1
	for {
		query := tx.Model(model).Where("slug = ?", slug)
		if excludeID != "" {
			query = query.Where("id != ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		counter++
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
	}
}
