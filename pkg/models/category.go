package models

import "time"

// Category groups products. Top-level categories have no ParentID; the tree is
// at most two levels deep.
type Category struct {
	ID          string  `json:"id" bson:"_id"`
	Slug        string  `json:"slug" bson:"slug"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	ParentID    *string `json:"parentId" bson:"parent_id,omitempty"`

	CreatedAt time.Time `json:"-" bson:"created_at"`
}

func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Image       string  `json:"image" binding:"omitempty,url"`
	ParentID    *string `json:"parentId"`
}

func (req *CreateCategoryRequest) ToCategory() *Category {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	return &Category{
		ID:          NewID(),
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		CreatedAt:   time.Now().UTC(),
	}
}
