package dto

import (
	"strings"

	"github.com/hongminglow/recipes-be/internal/models"
)

// CreateRecipeRequest is the body of POST /api/recipes.
type CreateRecipeRequest struct {
	Title       string   `json:"title" validate:"required,alphanum,min=3,max=200"`
	Category    string   `json:"category" validate:"required,alphanum,min=3,max=200"`
	Author      string   `json:"author" validate:"required,alphanum,min=3,max=200"`
	Origin      string   `json:"origin" validate:"required,alphanum,min=3,max=200"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Steps       []string `json:"steps" validate:"required,min=1,dive,required"`
	Image       *string  `json:"image" validate:"omitnil,min=1"`
}

// Normalized trims the text fields.
func (r CreateRecipeRequest) Normalized() CreateRecipeRequest {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.Origin = strings.TrimSpace(r.Origin)
	return r
}

// Recipe builds the model, falling back to the default image.
func (r CreateRecipeRequest) Recipe() models.Recipe {
	image := models.DefaultRecipeImage
	if r.Image != nil {
		image = *r.Image
	}
	return models.Recipe{
		Title:       r.Title,
		Category:    r.Category,
		Author:      r.Author,
		Origin:      r.Origin,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Image:       image,
	}
}

// UpdateRecipeRequest is a partial update; absent fields keep their value.
type UpdateRecipeRequest struct {
	Title       *string  `json:"title" validate:"omitnil,min=3,max=200"`
	Category    *string  `json:"category" validate:"omitnil,min=3,max=200"`
	Author      *string  `json:"author" validate:"omitnil,min=3,max=200"`
	Origin      *string  `json:"origin" validate:"omitnil,min=3,max=200"`
	Ingredients []string `json:"ingredients" validate:"omitnil,min=1,dive,required"`
	Steps       []string `json:"steps" validate:"omitnil,min=1,dive,required"`
	Image       *string  `json:"image" validate:"omitnil,min=1"`
}

// Normalized trims the text fields that were sent.
func (r UpdateRecipeRequest) Normalized() UpdateRecipeRequest {
	r.Title = trimPtr(r.Title)
	r.Category = trimPtr(r.Category)
	r.Author = trimPtr(r.Author)
	r.Origin = trimPtr(r.Origin)
	return r
}

// Patch converts the request into a store patch.
func (r UpdateRecipeRequest) Patch() models.RecipePatch {
	return models.RecipePatch{
		Title:       r.Title,
		Category:    r.Category,
		Author:      r.Author,
		Origin:      r.Origin,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Image:       r.Image,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
