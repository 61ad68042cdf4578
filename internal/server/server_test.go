package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"barrique/internal/config"
	"barrique/internal/models"
	"barrique/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func testConfig(flags string) *config.Config {
	return &config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      testSecret,
		JWTIssuer:      "barrique-api",
		JWTTTLMinutes:  10,
		BcryptCost:     4,
		AllowedOrigins: "http://localhost:3000",
		FeatureFlags:   flags,
	}
}

func newTestEnv(t *testing.T, flags string) testEnv {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv, err := NewServerWithDeps(testConfig(flags), db, rdb)
	require.NoError(t, err)
	return testEnv{app: srv.NewApp(), db: db, mr: mr}
}

// call sends a JSON request and returns the status and raw body.
func (e testEnv) call(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e testEnv) register(t *testing.T, username, password string) models.User {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/user/register", "", credentialsRequest{username, password})
	require.Equal(t, http.StatusOK, status, string(body))
	var user models.User
	require.NoError(t, json.Unmarshal(body, &user))
	return user
}

func (e testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/user/login", "", credentialsRequest{username, password})
	require.Equal(t, http.StatusOK, status, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestJourneyFlow(t *testing.T) {
	env := newTestEnv(t, "")

	bob := env.register(t, "bob", "pw123")
	assert.Equal(t, "bob", bob.Username)
	assert.NotZero(t, bob.ID)

	bobToken := env.login(t, "bob", "pw123")

	status, body := env.call(t, http.MethodPost, "/api/journey", bobToken, fiber.Map{
		"name": "Paris", "homeCurr": "USD", "vacCurr": "EUR", "budget": 1500,
		"startDate": "2024-07-01", "endDate": "2024-07-14",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	paris := decode[models.Journey](t, body)
	assert.Equal(t, bob.ID, paris.OwnerUserID)
	assert.Equal(t, "2024-07-01", paris.StartDate.String())

	status, body = env.call(t, http.MethodGet, "/api/user/journey", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]models.Journey](t, body)
	require.Len(t, mine, 1)
	assert.Equal(t, paris.ID, mine[0].ID)
	assert.Equal(t, "Paris", mine[0].Name)

	env.register(t, "carol", "pw456")
	carolToken := env.login(t, "carol", "pw456")
	journeyPath := fmt.Sprintf("/api/journey/%d", paris.ID)

	tests := []struct {
		name   string
		method string
		token  string
		body   any
		want   int
	}{
		{"carol cannot read", http.MethodGet, carolToken, nil, http.StatusForbidden},
		{"carol cannot update", http.MethodPut, carolToken, fiber.Map{"name": "Mine"}, http.StatusForbidden},
		{"carol cannot delete", http.MethodDelete, carolToken, nil, http.StatusForbidden},
		{"anonymous", http.MethodGet, "", nil, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "not-a-jwt", nil, http.StatusUnauthorized},
		{"bob reads", http.MethodGet, bobToken, nil, http.StatusOK},
		{"bob updates", http.MethodPut, bobToken, fiber.Map{"name": "Paris again", "homeCurr": "USD", "vacCurr": "EUR"}, http.StatusOK},
		{"invalid currency", http.MethodPut, bobToken, fiber.Map{"name": "Paris", "homeCurr": "dollars"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.call(t, tt.method, journeyPath, tt.token, tt.body)
			assert.Equal(t, tt.want, status, string(body))
		})
	}

	status, _ = env.call(t, http.MethodGet, "/api/journey/999999", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.call(t, http.MethodGet, "/api/journey/abc", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.call(t, http.MethodDelete, journeyPath, bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Journey deleted successfully.")

	status, _ = env.call(t, http.MethodGet, journeyPath, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExpenditureFlow(t *testing.T) {
	env := newTestEnv(t, "")
	env.register(t, "bob", "pw123")
	token := env.login(t, "bob", "pw123")
	env.register(t, "carol", "pw456")
	carolToken := env.login(t, "carol", "pw456")

	_, body := env.call(t, http.MethodPost, "/api/journey", token, fiber.Map{"name": "Rome"})
	rome := decode[models.Journey](t, body)
	_, body = env.call(t, http.MethodPost, "/api/journey", token, fiber.Map{"name": "Oslo"})
	oslo := decode[models.Journey](t, body)

	base := fmt.Sprintf("/api/journey/%d/expenditure", rome.ID)
	status, body := env.call(t, http.MethodPost, base, token, fiber.Map{"name": "Gelato", "amount": 4.5, "date": "2024-08-02"})
	require.Equal(t, http.StatusCreated, status, string(body))
	gelato := decode[models.Expenditure](t, body)
	assert.Equal(t, rome.ID, gelato.JourneyID)

	status, body = env.call(t, http.MethodPost, base, token, fiber.Map{"name": "Pizza", "amount": 12})
	require.Equal(t, http.StatusCreated, status)
	assert.False(t, decode[models.Expenditure](t, body).Date.IsZero(), "date defaults to today")

	status, _ = env.call(t, http.MethodPost, base, carolToken, fiber.Map{"name": "Sneaky"})
	assert.Equal(t, http.StatusForbidden, status)

	item := fmt.Sprintf("%s/%d", base, gelato.ID)
	status, body = env.call(t, http.MethodPut, item, token, fiber.Map{"name": "Gelato x2", "amount": 9, "date": "2024-08-02"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 9.0, decode[models.Expenditure](t, body).Amount)

	wrongJourney := fmt.Sprintf("/api/journey/%d/expenditure/%d", oslo.ID, gelato.ID)
	status, _ = env.call(t, http.MethodGet, wrongJourney, token, nil)
	assert.Equal(t, http.StatusNotFound, status, "expenditure must belong to the journey in the path")

	status, body = env.call(t, http.MethodGet, "/api/users/expenditures", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Expenditure](t, body), 2)

	status, body = env.call(t, http.MethodGet, "/api/users/expenditures", carolToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.Expenditure](t, body))

	status, _ = env.call(t, http.MethodDelete, item, token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = env.call(t, http.MethodGet, item, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRecipeFlow(t *testing.T) {
	env := newTestEnv(t, "")
	env.register(t, "bob", "pw123")
	token := env.login(t, "bob", "pw123")
	env.register(t, "carol", "pw456")
	carolToken := env.login(t, "carol", "pw456")

	status, body := env.call(t, http.MethodPost, "/api/recipe", token, fiber.Map{
		"title":             "Pancakes",
		"servings":          4,
		"ingredients":       []fiber.Map{{"title": "Flour", "amount": 200, "unit": "g"}, {"title": "Egg", "amount": 2}},
		"nutritionalValues": []fiber.Map{{"title": "Energy", "amount": 250, "unit": "kcal"}},
		"steps":             []fiber.Map{{"description": "Mix", "stepNumber": 1}, {"description": "Fry", "stepNumber": 2}},
		"tools":             []fiber.Map{{"title": "Pan", "amount": 1}},
		"tags":              []fiber.Map{{"tagType": "BREAKFAST"}},
	})
	require.Equal(t, http.StatusOK, status, string(body))
	recipe := decode[models.Recipe](t, body)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, recipe.ID, recipe.Ingredients[0].RecipeID)

	recipePath := fmt.Sprintf("/api/recipe/%d", recipe.ID)
	status, _ = env.call(t, http.MethodGet, recipePath, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	ingredients := fmt.Sprintf("/api/recipes/%d/ingredients", recipe.ID)
	status, body = env.call(t, http.MethodGet, ingredients, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Ingredient](t, body), 2)

	status, _ = env.call(t, http.MethodGet, ingredients, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	tags := fmt.Sprintf("/api/recipes/%d/tags", recipe.ID)
	status, body = env.call(t, http.MethodPost, tags, token, fiber.Map{"tagType": "VEGETARIAN"})
	require.Equal(t, http.StatusOK, status, string(body))
	vegetarian := decode[models.Tag](t, body)

	status, _ = env.call(t, http.MethodPost, tags, token, fiber.Map{"tagType": "SPICY"})
	assert.Equal(t, http.StatusBadRequest, status)

	tagPath := fmt.Sprintf("%s/%d", tags, vegetarian.ID)
	status, body = env.call(t, http.MethodPut, tagPath, token, fiber.Map{"tagType": "VEGAN"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.TagVegan, decode[models.Tag](t, body).TagType)

	status, body = env.call(t, http.MethodGet, "/api/users/tags", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Tag](t, body), 2)

	status, body = env.call(t, http.MethodDelete, tagPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Tag deleted successfully.")

	oldIngredient := fmt.Sprintf("%s/%d", ingredients, recipe.Ingredients[0].ID)
	status, body = env.call(t, http.MethodPut, recipePath, token, fiber.Map{
		"title":       "Crepes",
		"ingredients": []fiber.Map{{"title": "Milk", "amount": 500, "unit": "ml"}},
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "Crepes", decode[models.Recipe](t, body).Title)

	status, _ = env.call(t, http.MethodGet, oldIngredient, token, nil)
	assert.Equal(t, http.StatusNotFound, status, "replaced ingredients stop resolving")

	status, body = env.call(t, http.MethodGet, "/api/users/steps", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.RecipeStep](t, body))

	status, _ = env.call(t, http.MethodDelete, recipePath, carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = env.call(t, http.MethodDelete, recipePath, token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.call(t, http.MethodGet, recipePath, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.call(t, http.MethodGet, ingredients, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t, "")
	env.register(t, "bob", "pw123")

	status, body := env.call(t, http.MethodPost, "/api/user/register", "", credentialsRequest{"bob", "other"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, models.CodeConflict, decode[models.ErrorResponse](t, body).Code)

	status, _ = env.call(t, http.MethodPost, "/api/user/register", "", credentialsRequest{"", "pw"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.call(t, http.MethodPost, "/api/user/login", "", credentialsRequest{"bob", "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	wrongPassword := decode[models.ErrorResponse](t, body).Error

	_, body = env.call(t, http.MethodPost, "/api/user/login", "", credentialsRequest{"nobody", "pw123"})
	assert.Equal(t, wrongPassword, decode[models.ErrorResponse](t, body).Error)

	token := env.login(t, "bob", "pw123")
	status, body = env.call(t, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	me := decode[map[string]any](t, body)
	assert.Equal(t, "bob", me["username"])
	assert.NotContains(t, me, "password")

	status, _ = env.call(t, http.MethodPost, "/api/user/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.call(t, http.MethodGet, "/api/user/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "logged out tokens are revoked")
}

func TestUserRoutes(t *testing.T) {
	env := newTestEnv(t, "")
	bob := env.register(t, "bob", "pw123")
	env.register(t, "carol", "pw456")
	bobToken := env.login(t, "bob", "pw123")
	carolToken := env.login(t, "carol", "pw456")

	status, body := env.call(t, http.MethodGet, "/api/user", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.User](t, body), 2)

	status, body = env.call(t, http.MethodGet, fmt.Sprintf("/api/user/%d", bob.ID), carolToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bob", decode[models.User](t, body).Username)

	status, _ = env.call(t, http.MethodGet, "/api/user/424242", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, _ = env.call(t, http.MethodPost, "/api/journey", bobToken, fiber.Map{"name": "Paris"})

	status, _ = env.call(t, http.MethodDelete, "/api/user/bob", carolToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.call(t, http.MethodDelete, "/api/user/bob", bobToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.call(t, http.MethodGet, "/api/user/journey", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "a deleted user's token no longer resolves")

	var journeys int64
	require.NoError(t, env.db.Model(&models.Journey{}).Count(&journeys).Error)
	assert.Zero(t, journeys)

	// The username is free again, but the old session stays dead.
	reborn := env.register(t, "bob", "fresh-pw")
	assert.NotEqual(t, bob.ID, reborn.ID)
	status, _ = env.call(t, http.MethodGet, "/api/user/me", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeletedAccountTokenWithoutRedis(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	srv, err := NewServerWithDeps(testConfig(""), db, nil)
	require.NoError(t, err)
	env := testEnv{app: srv.NewApp(), db: db}

	env.register(t, "bob", "pw123")
	token := env.login(t, "bob", "pw123")
	status, _ := env.call(t, http.MethodDelete, "/api/user/bob", token, nil)
	require.Equal(t, http.StatusOK, status)

	env.register(t, "bob", "pw123")
	status, _ = env.call(t, http.MethodGet, "/api/user/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "the token is bound to the deleted row")
}

func TestUnknownAPIPath(t *testing.T) {
	env := newTestEnv(t, "")
	status, _ := env.call(t, http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.call(t, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFeatureFlags(t *testing.T) {
	env := newTestEnv(t, "recipevault=off")
	env.register(t, "bob", "pw123")
	token := env.login(t, "bob", "pw123")

	tests := []struct {
		path  string
		token string
		want  int
	}{
		{"/api/user/recipe", token, http.StatusNotFound},
		{"/api/recipes/1/ingredients", token, http.StatusNotFound},
		{"/api/users/tags", token, http.StatusNotFound},
		{"/api/tags/types", "", http.StatusNotFound},
		{"/api/user/journey", token, http.StatusOK},
		{"/api/users/expenditures", token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, _ := env.call(t, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, status)
		})
	}

	status, body := env.call(t, http.MethodGet, "/api/feature-flags", token, nil)
	require.Equal(t, http.StatusOK, status)
	flags := decode[struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}](t, body)
	assert.Equal(t, "off", flags.Raw["recipevault"])
	assert.False(t, flags.Evaluated["recipevault"])
	assert.True(t, flags.Evaluated["bucksbuddy"])
}

func TestTagTypes(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.call(t, http.MethodGet, "/api/tags/types", "", nil)
	require.Equal(t, http.StatusOK, status)
	catalogue := decode[struct {
		Groups []models.TagGroup `json:"groups"`
		Types  []models.TagType  `json:"types"`
	}](t, body)
	assert.Len(t, catalogue.Groups, 4)
	assert.Len(t, catalogue.Types, 21)
	assert.Contains(t, catalogue.Types, models.TagCleanEating)
}

func TestHealthChecks(t *testing.T) {
	env := newTestEnv(t, "")

	status, body := env.call(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"up"`)

	status, body = env.call(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status, string(body))

	env.mr.Close()
	status, body = env.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(body), `"redis":"unhealthy"`)
}

func TestReadinessWithoutRedis(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	srv, err := NewServerWithDeps(testConfig(""), db, nil)
	require.NoError(t, err)
	app := srv.NewApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"redis":"unavailable"`)
}
