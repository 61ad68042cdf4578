package seed

import (
	"fmt"
	"strings"
	"time"

	"barrique/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// placeholderHash is stored instead of a real bcrypt hash when SkipBcrypt is set.
const placeholderHash = "$2a$04$seedseedseedseedseedseOQ7m1Ck0fYcH3xg8bq9qZ0p2H1lKqVe"

// SeedOptions tunes how the Factory builds rows.
type SeedOptions struct {
	// DryRun builds rows with synthetic ids and never touches the database.
	DryRun bool
	// SkipBcrypt stores a fixed hash; seeded users cannot log in.
	SkipBcrypt bool
	// BcryptCost is used for real hashes. Zero means bcrypt.DefaultCost.
	BcryptCost int
	// MaxDays bounds how far back journey start dates may go.
	MaxDays int
}

// Factory produces realistic journeys, expenditures and recipes.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 365
	}
	return &Factory{db: db, opts: opts, nextID: 1000}
}

func (f *Factory) syntheticID() uint {
	f.nextID++
	return f.nextID
}

func (f *Factory) hash(password string) (string, error) {
	if f.opts.SkipBcrypt {
		return placeholderHash, nil
	}
	cost := f.opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CreateUser persists a user whose username is derived from a fake name.
// seq keeps usernames unique within one run.
func (f *Factory) CreateUser(seq int, password string) (*models.User, error) {
	hashed, err := f.hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	base := strings.ToLower(gofakeit.FirstName() + "." + gofakeit.LastName())
	base = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r == '.' {
			return r
		}
		return -1
	}, base)
	if base == "" || base == "." {
		base = "traveller"
	}
	if len(base) > 40 {
		base = base[:40]
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", base, seq),
		Password: hashed,
	}
	if f.opts.DryRun {
		user.ID = f.syntheticID()
		return user, nil
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildJourney constructs a journey with expenditures dated inside its range.
// The result is not persisted.
func (f *Factory) BuildJourney(owner *models.User, expenditures int, overrides ...func(*models.Journey)) *models.Journey {
	now := time.Now()
	start := gofakeit.DateRange(now.AddDate(0, 0, -f.opts.MaxDays), now)
	end := start.AddDate(0, 0, gofakeit.Number(2, 21))

	home := gofakeit.CurrencyShort()
	dest := gofakeit.CurrencyShort()

	journey := &models.Journey{
		OwnerUserID:         owner.ID,
		Name:                gofakeit.City(),
		HomeCurrency:        home,
		DestinationCurrency: dest,
		Budget:              gofakeit.Number(2, 60) * 100,
		StartDate:           models.NewDate(start),
		EndDate:             models.NewDate(end),
	}
	for i := 0; i < expenditures; i++ {
		journey.Expenditures = append(journey.Expenditures, models.Expenditure{
			Name:   gofakeit.RandomString(expenditureNames),
			Amount: gofakeit.Price(1, 250),
			Date:   models.NewDate(gofakeit.DateRange(start, end)),
		})
	}
	for _, o := range overrides {
		o(journey)
	}
	return journey
}

// CreateJourney builds and persists a journey along with its expenditures.
func (f *Factory) CreateJourney(owner *models.User, expenditures int, overrides ...func(*models.Journey)) (*models.Journey, error) {
	journey := f.BuildJourney(owner, expenditures, overrides...)
	if f.opts.DryRun {
		journey.ID = f.syntheticID()
		for i := range journey.Expenditures {
			journey.Expenditures[i].ID = f.syntheticID()
			journey.Expenditures[i].JourneyID = journey.ID
		}
		return journey, nil
	}
	if err := f.db.Create(journey).Error; err != nil {
		return nil, err
	}
	return journey, nil
}

// BuildRecipe constructs a recipe with every component collection filled.
// The result is not persisted.
func (f *Factory) BuildRecipe(owner *models.User, overrides ...func(*models.Recipe)) *models.Recipe {
	recipe := &models.Recipe{
		OwnerUserID: owner.ID,
		Title:       f.dishName(),
		Description: gofakeit.Sentence(12),
		ImageURL:    gofakeit.ImageURL(640, 480),
		Favorite:    gofakeit.Bool(),
		Time:        fmt.Sprintf("%d min", gofakeit.Number(2, 24)*5),
		SourceURL:   gofakeit.URL(),
		Servings:    gofakeit.Number(1, 8),
		PortionSize: gofakeit.Number(1, 6) * 100,
	}

	for _, title := range pickDistinct(ingredientNames, gofakeit.Number(3, 8)) {
		recipe.Ingredients = append(recipe.Ingredients, models.Ingredient{
			Title:  title,
			Amount: float64(gofakeit.Number(1, 50) * 10),
			Unit:   gofakeit.RandomString(ingredientUnits),
		})
	}
	for _, title := range pickDistinct(nutrientNames, gofakeit.Number(2, len(nutrientNames))) {
		recipe.NutritionalValues = append(recipe.NutritionalValues, models.NutritionalValue{
			Title:  title,
			Amount: gofakeit.Float64Range(0.5, 80),
		})
	}
	for i := 1; i <= gofakeit.Number(2, 6); i++ {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{
			Description: gofakeit.RandomString(stepVerbs) + " " + gofakeit.Sentence(6),
			StepNumber:  i,
		})
	}
	for _, title := range pickDistinct(toolNames, gofakeit.Number(1, 4)) {
		recipe.Tools = append(recipe.Tools, models.Tool{Title: title, Amount: gofakeit.Number(1, 2)})
	}
	for _, group := range models.TagGroups() {
		if gofakeit.Bool() {
			continue
		}
		tt := group.Types[gofakeit.Number(0, len(group.Types)-1)]
		recipe.Tags = append(recipe.Tags, models.Tag{TagType: tt})
	}

	for _, o := range overrides {
		o(recipe)
	}
	return recipe
}

// CreateRecipe builds and persists a recipe along with its components.
func (f *Factory) CreateRecipe(owner *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(owner, overrides...)
	if f.opts.DryRun {
		recipe.ID = f.syntheticID()
		return recipe, nil
	}
	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (f *Factory) dishName() string {
	switch gofakeit.Number(0, 4) {
	case 0:
		return gofakeit.Breakfast()
	case 1:
		return gofakeit.Lunch()
	case 2:
		return gofakeit.Dinner()
	case 3:
		return gofakeit.Dessert()
	default:
		return gofakeit.Snack()
	}
}

// pickDistinct returns n distinct entries of pool in random order.
func pickDistinct(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	shuffled := append([]string(nil), pool...)
	gofakeit.ShuffleStrings(shuffled)
	return shuffled[:n]
}
