package models

import (
	"time"

	"github.com/google/uuid"
)

// Menu item types.
const (
	MenuTypePage     = "page"
	MenuTypeSection  = "section"
	MenuTypeLink     = "link"
	MenuTypeCategory = "category"
)

type MenuItem struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Slug             string    `db:"slug" json:"slug"`
	Description      *string   `db:"description" json:"description,omitempty"`
	Type             string    `db:"type" json:"type"`
	TargetType       *string   `db:"target_type" json:"targetType,omitempty"`
	CategoryID       *string   `db:"category_id" json:"categoryId,omitempty"`
	CollectionID     *string   `db:"collection_id" json:"collectionId,omitempty"`
	SignaturePieceID *string   `db:"signature_piece_id" json:"signaturePieceId,omitempty"`
	ParentID         *string   `db:"parent_id" json:"parentId,omitempty"`
	Level            int       `db:"level" json:"level"`
	Country          []string  `db:"country" json:"country,omitempty"`
	Language         []string  `db:"language" json:"language,omitempty"`
	Tags             []string  `db:"tags" json:"tags,omitempty"`
	IsActive         bool      `db:"is_active" json:"isActive"`
	Order            int       `db:"sort_order" json:"order"`
	Icon             *string   `db:"icon" json:"icon,omitempty"`
	Image            *string   `db:"image" json:"image,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
}

// MenuItemRequest is the create/update payload. Validation runs through
// gin's binding pipeline.
//
// targetType is conventionally one of category/collection/page/external,
// and the matching id field (categoryId, collectionId, signaturePieceId)
// is expected alongside it. That pairing is a convention of the callers,
// not enforced here.
type MenuItemRequest struct {
	Name             string   `json:"name" binding:"required,max=100"`
	Slug             string   `json:"slug" binding:"required,max=100"`
	Description      *string  `json:"description" binding:"omitempty,max=500"`
	Type             string   `json:"type" binding:"required,oneof=page section link category"`
	TargetType       *string  `json:"targetType" binding:"omitempty,max=100"`
	CategoryID       *string  `json:"categoryId"`
	CollectionID     *string  `json:"collectionId"`
	SignaturePieceID *string  `json:"signaturePieceId"`
	ParentID         *string  `json:"parentId"`
	Level            *int     `json:"level" binding:"omitempty,min=0"`
	Country          []string `json:"country"`
	Language         []string `json:"language"`
	Tags             []string `json:"tags"`
	IsActive         *bool    `json:"isActive"`
	Order            *int     `json:"order" binding:"omitempty,min=0"`
	Icon             *string  `json:"icon" binding:"omitempty,max=100"`
	Image            *string  `json:"image" binding:"omitempty,max=255"`
}

// ToMenuItem builds a MenuItem from the request, applying defaults:
// isActive true, order 0, level 0, and an empty parentId normalized to
// null.
func (r *MenuItemRequest) ToMenuItem() *MenuItem {
	item := &MenuItem{
		ID:               uuid.New(),
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		Type:             r.Type,
		TargetType:       r.TargetType,
		CategoryID:       r.CategoryID,
		CollectionID:     r.CollectionID,
		SignaturePieceID: r.SignaturePieceID,
		ParentID:         r.ParentID,
		Country:          r.Country,
		Language:         r.Language,
		Tags:             r.Tags,
		IsActive:         true,
		Icon:             r.Icon,
		Image:            r.Image,
	}
	if r.ParentID != nil && *r.ParentID == "" {
		item.ParentID = nil
	}
	if r.Level != nil {
		item.Level = *r.Level
	}
	if r.IsActive != nil {
		item.IsActive = *r.IsActive
	}
	if r.Order != nil {
		item.Order = *r.Order
	}
	return item
}
