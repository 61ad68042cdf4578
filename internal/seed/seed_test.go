package seed

import (
	"testing"

	"barrique/internal/models"
	"barrique/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed_CreatesRequestedCounts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	summary, err := Seed(db, Options{
		NumUsers:               3,
		JourneysPerUser:        2,
		ExpendituresPerJourney: 4,
		RecipesPerUser:         1,
		Factory:                SeedOptions{BcryptCost: bcrypt.MinCost},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Users)
	assert.Equal(t, 6, summary.Journeys)
	assert.Equal(t, 24, summary.Expenditures)
	assert.Equal(t, 3, summary.Recipes)

	var users, journeys, expenditures, recipes int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Journey{}).Count(&journeys).Error)
	require.NoError(t, db.Model(&models.Expenditure{}).Count(&expenditures).Error)
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	assert.EqualValues(t, 3, users)
	assert.EqualValues(t, 6, journeys)
	assert.EqualValues(t, 24, expenditures)
	assert.EqualValues(t, 3, recipes)
}

func TestSeed_UsersCanAuthenticate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	_, err := Seed(db, Options{NumUsers: 1, Password: "letmein", Factory: SeedOptions{BcryptCost: bcrypt.MinCost}})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("letmein")))
}

func TestSeed_CleanRemovesExistingRows(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	owner := testutil.CreateUser(t, db, "existing")
	testutil.CreateJourney(t, db, owner.ID, "Old trip")
	testutil.CreateRecipe(t, db, owner.ID, "Old soup")

	_, err := Seed(db, Options{NumUsers: 1, ShouldClean: true, Factory: SeedOptions{SkipBcrypt: true}})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "existing").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Journey{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeed_DryRunWritesNothing(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	summary, err := Seed(db, Options{
		NumUsers: 2, JourneysPerUser: 1, ExpendituresPerJourney: 2, RecipesPerUser: 1,
		Factory: SeedOptions{DryRun: true, SkipBcrypt: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Users)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFactory_BuildJourneyKeepsExpendituresInRange(t *testing.T) {
	f := NewFactory(nil, SeedOptions{MaxDays: 30})
	journey := f.BuildJourney(&models.User{ID: 7}, 10)

	assert.Equal(t, uint(7), journey.OwnerUserID)
	assert.Len(t, journey.HomeCurrency, 3)
	assert.Len(t, journey.DestinationCurrency, 3)
	assert.False(t, journey.EndDate.Before(journey.StartDate.Time))
	require.Len(t, journey.Expenditures, 10)
	for _, e := range journey.Expenditures {
		assert.False(t, e.Date.Before(journey.StartDate.Time), "expenditure before start")
		assert.False(t, e.Date.After(journey.EndDate.Time), "expenditure after end")
		assert.Positive(t, e.Amount)
	}
}

func TestFactory_BuildRecipeComponentsAreValid(t *testing.T) {
	f := NewFactory(nil, SeedOptions{})

	for i := 0; i < 20; i++ {
		recipe := f.BuildRecipe(&models.User{ID: 1})
		require.NotEmpty(t, recipe.Title)
		require.NoError(t, recipe.ValidateComponents())

		seen := map[string]bool{}
		for _, tag := range recipe.Tags {
			group := tagGroupOf(tag.TagType)
			assert.False(t, seen[group], "two tags from group %s", group)
			seen[group] = true
		}
		for n, step := range recipe.Steps {
			assert.Equal(t, n+1, step.StepNumber)
		}
	}
}

func TestFactory_BuildRecipeOverrides(t *testing.T) {
	f := NewFactory(nil, SeedOptions{})
	recipe := f.BuildRecipe(&models.User{ID: 1}, func(r *models.Recipe) {
		r.Title = "Pancakes"
		r.Tags = nil
	})
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Empty(t, recipe.Tags)
}

func TestPickDistinct(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer than pool", 3, 3},
		{"whole pool", len(toolNames), len(toolNames)},
		{"more than pool", len(toolNames) + 5, len(toolNames)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickDistinct(toolNames, tt.n)
			assert.Len(t, got, tt.want)
			seen := map[string]bool{}
			for _, v := range got {
				assert.False(t, seen[v])
				seen[v] = true
			}
		})
	}
}

func tagGroupOf(tt models.TagType) string {
	for _, g := range models.TagGroups() {
		for _, t := range g.Types {
			if t == tt {
				return g.Name
			}
		}
	}
	return ""
}
