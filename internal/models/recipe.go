package models

import (
	"errors"
	"strings"
	"time"
)

// Recipe is a user's recipe together with every component collection.
type Recipe struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	OwnerUserID       uint               `gorm:"not null;index" json:"ownerUserId"`
	Title             string             `gorm:"size:255;not null" json:"title"`
	Description       string             `gorm:"type:text" json:"description"`
	ImageURL          string             `json:"imageUrl"`
	Favorite          bool               `json:"favorite"`
	Time              string             `gorm:"size:64" json:"time"`
	SourceURL         string             `json:"sourceUrl"`
	Servings          int                `json:"servings"`
	PortionSize       int                `json:"portionSize"`
	Ingredients       []Ingredient       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	NutritionalValues []NutritionalValue `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"nutritionalValues"`
	Steps             []RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"steps"`
	Tools             []Tool             `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tools"`
	Tags              []Tag              `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// BindComponents points every nested component at recipeID and clears client-supplied ids.
func (r *Recipe) BindComponents(recipeID uint) {
	for i := range r.Ingredients {
		r.Ingredients[i].BindToRecipe(recipeID)
	}
	for i := range r.NutritionalValues {
		r.NutritionalValues[i].BindToRecipe(recipeID)
	}
	for i := range r.Steps {
		r.Steps[i].BindToRecipe(recipeID)
	}
	for i := range r.Tools {
		r.Tools[i].BindToRecipe(recipeID)
	}
	for i := range r.Tags {
		r.Tags[i].BindToRecipe(recipeID)
	}
}

// ValidateComponents checks every nested component.
func (r *Recipe) ValidateComponents() error {
	for i := range r.Ingredients {
		if err := r.Ingredients[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.NutritionalValues {
		if err := r.NutritionalValues[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Steps {
		if err := r.Steps[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Tools {
		if err := r.Tools[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Tags {
		if err := r.Tags[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Ingredient is a quantity of something that goes into a recipe.
type Ingredient struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RecipeID uint    `gorm:"not null;index" json:"recipeId"`
	Title    string  `gorm:"size:255;not null" json:"title"`
	Amount   float64 `json:"amount"`
	Unit     string  `gorm:"size:32" json:"unit"`
}

// NutritionalValue is a named nutrient amount per recipe.
type NutritionalValue struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RecipeID uint    `gorm:"not null;index" json:"recipeId"`
	Title    string  `gorm:"size:255;not null" json:"title"`
	Amount   float64 `json:"amount"`
}

// RecipeStep is one numbered instruction.
type RecipeStep struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RecipeID    uint   `gorm:"not null;index" json:"recipeId"`
	Description string `gorm:"type:text;not null" json:"description"`
	StepNumber  int    `json:"stepNumber"`
}

// TableName keeps the table name aligned with the SQL migrations.
func (RecipeStep) TableName() string {
	return "recipe_steps"
}

// Tool is a piece of equipment a recipe needs.
type Tool struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"not null;index" json:"recipeId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Amount   int    `json:"amount"`
}

// Tag classifies a recipe with one TagType.
type Tag struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	RecipeID uint    `gorm:"not null;index" json:"recipeId"`
	TagType  TagType `gorm:"size:32;not null" json:"tagType"`
}

var errTitleRequired = errors.New("title is required")

func (i *Ingredient) ComponentName() string { return "Ingredient" }
func (i *Ingredient) PrimaryKey() uint { return i.ID }
func (i *Ingredient) ParentRecipeID() uint { return i.RecipeID }
func (i *Ingredient) BindToRecipe(recipeID uint) { i.ID, i.RecipeID = 0, recipeID }

// CopyFieldsFrom overwrites every mutable field.
func (i *Ingredient) CopyFieldsFrom(src *Ingredient) {
	i.Title, i.Amount, i.Unit = src.Title, src.Amount, src.Unit
}

func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errTitleRequired
	}
	if i.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	return nil
}

func (n *NutritionalValue) ComponentName() string { return "NutritionalValue" }
func (n *NutritionalValue) PrimaryKey() uint { return n.ID }
func (n *NutritionalValue) ParentRecipeID() uint { return n.RecipeID }
func (n *NutritionalValue) BindToRecipe(recipeID uint) { n.ID, n.RecipeID = 0, recipeID }

// CopyFieldsFrom overwrites every mutable field.
func (n *NutritionalValue) CopyFieldsFrom(src *NutritionalValue) {
	n.Title, n.Amount = src.Title, src.Amount
}

func (n *NutritionalValue) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errTitleRequired
	}
	return nil
}

func (s *RecipeStep) ComponentName() string { return "RecipeStep" }
func (s *RecipeStep) PrimaryKey() uint { return s.ID }
func (s *RecipeStep) ParentRecipeID() uint { return s.RecipeID }
func (s *RecipeStep) BindToRecipe(recipeID uint) { s.ID, s.RecipeID = 0, recipeID }

// CopyFieldsFrom overwrites every mutable field.
func (s *RecipeStep) CopyFieldsFrom(src *RecipeStep) {
	s.Description, s.StepNumber = src.Description, src.StepNumber
}

func (s *RecipeStep) Validate() error {
	if strings.TrimSpace(s.Description) == "" {
		return errors.New("step description is required")
	}
	if s.StepNumber < 0 {
		return errors.New("step number must not be negative")
	}
	return nil
}

func (t *Tool) ComponentName() string { return "Tool" }
func (t *Tool) PrimaryKey() uint { return t.ID }
func (t *Tool) ParentRecipeID() uint { return t.RecipeID }
func (t *Tool) BindToRecipe(recipeID uint) { t.ID, t.RecipeID = 0, recipeID }

// CopyFieldsFrom overwrites every mutable field.
func (t *Tool) CopyFieldsFrom(src *Tool) {
	t.Title, t.Amount = src.Title, src.Amount
}

func (t *Tool) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errTitleRequired
	}
	return nil
}

func (t *Tag) ComponentName() string { return "Tag" }
func (t *Tag) PrimaryKey() uint { return t.ID }
func (t *Tag) ParentRecipeID() uint { return t.RecipeID }
func (t *Tag) BindToRecipe(recipeID uint) { t.ID, t.RecipeID = 0, recipeID }

// CopyFieldsFrom overwrites every mutable field.
func (t *Tag) CopyFieldsFrom(src *Tag) {
	t.TagType = src.TagType
}

func (t *Tag) Validate() error {
	return t.TagType.Validate()
}
