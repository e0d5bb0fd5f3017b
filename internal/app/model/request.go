package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of an add request. Transitions are
// one-way: pending is the only non-terminal state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known status value.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// PlaceAddRequest is a user-submitted proposal for a new place, optionally
// bundled with its first branch. Proposals are untyped snapshots; the
// approval path reads them defensively.
type PlaceAddRequest struct {
	ID              string        `gorm:"type:uuid;primarykey" json:"id"`
	AuthorID        *string       `gorm:"type:uuid;index" json:"author_id"`
	Author          *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ProposedPlace   JSONMap       `gorm:"type:json" json:"proposed_place"`
	ProposedBranch  JSONMap       `gorm:"type:json" json:"proposed_branch"`
	Status          RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewedBy      *string       `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at"`
	RejectionReason *string       `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
}

func (PlaceAddRequest) TableName() string {
	return "place_add_requests"
}

func (r *PlaceAddRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// BranchAddRequest proposes a new branch under an existing place.
type BranchAddRequest struct {
	ID              string        `gorm:"type:uuid;primarykey" json:"id"`
	PlaceID         string        `gorm:"type:uuid;not null;index" json:"place_id"`
	Place           *Place        `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	AuthorID        *string       `gorm:"type:uuid;index" json:"author_id"`
	Author          *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ProposedBranch  JSONMap       `gorm:"type:json" json:"proposed_branch"`
	Status          RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewedBy      *string       `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at"`
	RejectionReason *string       `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `gorm:"index" json:"created_at"`
}

func (BranchAddRequest) TableName() string {
	return "branch_add_requests"
}

func (r *BranchAddRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
