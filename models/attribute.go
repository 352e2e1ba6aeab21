package models

// AttributeKind selects which recipe attribute table an operation targets.
type AttributeKind string

const (
	TagKind        AttributeKind = "tag"
	IngredientKind AttributeKind = "ingredient"
)

// Attribute is a named, user-owned label attachable to recipes.
// Tags and ingredients share this shape.
type Attribute struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"-"`
}

type (
	Tag        = Attribute
	Ingredient = Attribute
)

// AttributeFilter narrows an attribute listing.
type AttributeFilter struct {
	UserID int64

	// AssignedOnly restricts the result to attributes linked to at least one
	// recipe of the same user.
	AssignedOnly bool
}
