package models

import "fmt"

// TagType is the closed set of recipe classifications.
type TagType string

// Nutrition
const (
	TagMeat       TagType = "MEAT"
	TagFish       TagType = "FISH"
	TagVegetarian TagType = "VEGETARIAN"
	TagVegan      TagType = "VEGAN"
)

// Difficulty
const (
	TagEasy   TagType = "EASY"
	TagMedium TagType = "MEDIUM"
	TagHard   TagType = "HARD"
)

// Meal type
const (
	TagAppetizer  TagType = "APPETIZER"
	TagMainCourse TagType = "MAIN_COURSE"
	TagDessert    TagType = "DESSERT"
	TagBreakfast  TagType = "BREAKFAST"
	TagSoup       TagType = "SOUP"
	TagCasserole  TagType = "CASSEROLE"
	TagSnack      TagType = "SNACK"
	TagBeverage   TagType = "BEVERAGE"
)

// Diet type
const (
	TagLactoseFree TagType = "LACTOSE_FREE"
	TagLowCarb     TagType = "LOW_CARB"
	TagGlutenFree  TagType = "GLUTEN_FREE"
	TagPaleo       TagType = "PALEO"
	TagLowSugar    TagType = "LOW_SUGAR"
	TagCleanEating TagType = "CLEAN_EATING"
)

// TagGroup is a named subset of TagTypes.
type TagGroup struct {
	Name  string    `json:"name"`
	Types []TagType `json:"types"`
}

var tagGroups = []TagGroup{
	{Name: "nutrition", Types: []TagType{TagMeat, TagFish, TagVegetarian, TagVegan}},
	{Name: "difficulty", Types: []TagType{TagEasy, TagMedium, TagHard}},
	{Name: "mealType", Types: []TagType{
		TagAppetizer, TagMainCourse, TagDessert, TagBreakfast,
		TagSoup, TagCasserole, TagSnack, TagBeverage,
	}},
	{Name: "dietType", Types: []TagType{
		TagLactoseFree, TagLowCarb, TagGlutenFree,
		TagPaleo, TagLowSugar, TagCleanEating,
	}},
}

// TagGroups returns the catalogue of tag types grouped by category.
func TagGroups() []TagGroup {
	out := make([]TagGroup, len(tagGroups))
	for i, g := range tagGroups {
		out[i] = TagGroup{Name: g.Name, Types: append([]TagType(nil), g.Types...)}
	}
	return out
}

// AllTagTypes lists every valid TagType.
func AllTagTypes() []TagType {
	var all []TagType
	for _, g := range tagGroups {
		all = append(all, g.Types...)
	}
	return all
}

// IsValid reports whether t is a member of the closed set.
func (t TagType) IsValid() bool {
	for _, g := range tagGroups {
		for _, known := range g.Types {
			if t == known {
				return true
			}
		}
	}
	return false
}

// Validate returns an error for unknown tag types.
func (t TagType) Validate() error {
	if !t.IsValid() {
		return fmt.Errorf("unknown tag type %q", string(t))
	}
	return nil
}
