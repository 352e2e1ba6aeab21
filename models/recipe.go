package models

// Recipe is the persisted form of a recipe owned by a single user.
type Recipe struct {
	ID     int64
	UserID int64

	Name string
	// Time is the preparation time in minutes.
	Time  int
	Price Price
	Link  string

	// Image is the stored file name relative to the image storage root, e.g.
	// "uploads/recipes/<uuid>.jpg". Empty when no image is attached.
	Image string

	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeSummary is the list representation: associations are ids only.
type RecipeSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Time        int     `json:"time"`
	Price       Price   `json:"price"`
	Link        string  `json:"link"`
	Image       *string `json:"image"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

// RecipeDetail expands tags and ingredients to {id, name} records.
type RecipeDetail struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Time        int         `json:"time"`
	Price       Price       `json:"price"`
	Link        string      `json:"link"`
	Image       *string     `json:"image"`
	Tags        []Attribute `json:"tags"`
	Ingredients []Attribute `json:"ingredients"`
}

// RecipeInput is the request body of create, full update and partial update.
// A nil field means the client did not send it.
type RecipeInput struct {
	Name        *string  `json:"name"`
	Time        *int     `json:"time"`
	Price       *Price   `json:"price"`
	Link        *string  `json:"link"`
	Tags        *[]int64 `json:"tags"`
	Ingredients *[]int64 `json:"ingredients"`
}

// UpdateMode tells the recipe service how absent input fields are treated.
type UpdateMode int

const (
	// FullUpdate requires every scalar field and clears absent link and
	// association fields.
	FullUpdate UpdateMode = iota
	// PartialUpdate keeps absent fields unchanged.
	PartialUpdate
)

// RecipeFilter narrows a recipe listing. Empty id lists do not filter.
type RecipeFilter struct {
	UserID        int64
	TagIDs        []int64
	IngredientIDs []int64
}

// ImageFile is an uploaded image payload.
type ImageFile struct {
	// Name is the client supplied file name; only its extension is kept.
	Name string
	Data []byte
}

// RecipeImage is the response body of an image upload.
type RecipeImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}
