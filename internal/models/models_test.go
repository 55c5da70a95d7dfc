package models

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() MenuItemRequest {
	return MenuItemRequest{
		Name: "Rings",
		Slug: "rings",
		Type: MenuTypeCategory,
	}
}

func TestToMenuItemDefaults(t *testing.T) {
	req := validRequest()
	item := req.ToMenuItem()

	assert.NotEqual(t, item.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, item.IsActive)
	assert.Equal(t, 0, item.Order)
	assert.Equal(t, 0, item.Level)
	assert.Nil(t, item.ParentID)
}

func TestToMenuItemNormalizesEmptyParent(t *testing.T) {
	empty := ""
	parent := "abc-123"

	req := validRequest()
	req.ParentID = &empty
	assert.Nil(t, req.ToMenuItem().ParentID)

	req.ParentID = &parent
	require.NotNil(t, req.ToMenuItem().ParentID)
	assert.Equal(t, parent, *req.ToMenuItem().ParentID)
}

func TestToMenuItemExplicitValuesWin(t *testing.T) {
	inactive := false
	order := 7
	level := 2

	req := validRequest()
	req.IsActive = &inactive
	req.Order = &order
	req.Level = &level

	item := req.ToMenuItem()
	assert.False(t, item.IsActive)
	assert.Equal(t, 7, item.Order)
	assert.Equal(t, 2, item.Level)
}

func TestMenuItemRequestValidation(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name    string
		mutate  func(*MenuItemRequest)
		wantErr bool
	}{
		{"valid", func(r *MenuItemRequest) {}, false},
		{"missing name", func(r *MenuItemRequest) { r.Name = "" }, true},
		{"name too long", func(r *MenuItemRequest) { r.Name = long(101) }, true},
		{"missing slug", func(r *MenuItemRequest) { r.Slug = "" }, true},
		{"bad type", func(r *MenuItemRequest) { r.Type = "banner" }, true},
		{"type link", func(r *MenuItemRequest) { r.Type = MenuTypeLink }, false},
		{"description too long", func(r *MenuItemRequest) { d := long(501); r.Description = &d }, true},
		{"negative order", func(r *MenuItemRequest) { o := -1; r.Order = &o }, true},
		{"negative level", func(r *MenuItemRequest) { l := -3; r.Level = &l }, true},
		{"icon too long", func(r *MenuItemRequest) { i := long(101); r.Icon = &i }, true},
		{"image too long", func(r *MenuItemRequest) { i := long(256); r.Image = &i }, true},
		{"image ok", func(r *MenuItemRequest) { i := "uploads/menu-items/x.png"; r.Image = &i }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
