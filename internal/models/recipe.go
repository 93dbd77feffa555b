package models

import "time"

// DefaultRecipeImage is stored when a recipe is created without an image.
const DefaultRecipeImage = "default-image.png"

// Recipe is a content item. It carries no owner; only admins may mutate it.
type Recipe struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Origin      string    `json:"origin"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecipePatch lists the fields of a partial recipe update. Nil means unchanged.
type RecipePatch struct {
	Title       *string
	Category    *string
	Author      *string
	Origin      *string
	Ingredients []string
	Steps       []string
	Image       *string
}

// Apply copies every set field of p onto r.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Author != nil {
		r.Author = *p.Author
	}
	if p.Origin != nil {
		r.Origin = *p.Origin
	}
	if p.Ingredients != nil {
		r.Ingredients = p.Ingredients
	}
	if p.Steps != nil {
		r.Steps = p.Steps
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
}
