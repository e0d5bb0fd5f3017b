package model

import (
	"time"
)

type Cuisine struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Cuisine) TableName() string {
	return "cuisine_types"
}

// PlaceCuisine links places to the cuisines they serve. The plain FK (no
// cascade) is what blocks deleting a cuisine that is still in use.
type PlaceCuisine struct {
	PlaceID   string `gorm:"type:uuid;primaryKey" json:"place_id"`
	CuisineID uint   `gorm:"primaryKey" json:"cuisine_id"`

	Place   Place   `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Cuisine Cuisine `gorm:"foreignKey:CuisineID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (PlaceCuisine) TableName() string {
	return "place_cuisines"
}

// BranchCuisine mirrors PlaceCuisine for branch-level overrides.
type BranchCuisine struct {
	BranchID  string `gorm:"type:uuid;primaryKey" json:"branch_id"`
	CuisineID uint   `gorm:"primaryKey" json:"cuisine_id"`

	Branch  Branch  `gorm:"foreignKey:BranchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Cuisine Cuisine `gorm:"foreignKey:CuisineID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (BranchCuisine) TableName() string {
	return "branch_cuisines"
}
