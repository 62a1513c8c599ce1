package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/nomato-app/nomato-backend/models"
	"github.com/nomato-app/nomato-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func ptr[T any](v T) *T { return &v }

func TestCategoriesUseDefaultIcon(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	testutil.Seed(t, s.db,
		models.Category{Name: "Seafood", Icon: ptr("https://cdn.test/seafood.svg")},
		models.Category{Name: "Bakmie"},
		models.Category{Name: "Dessert", Icon: ptr("")},
	)

	rec := s.get("/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	cats := decodeData[[]models.CategoryResponse](t, rec)
	require.Len(t, cats, 3)
	assert.Equal(t, "Bakmie", cats[0].Name)
	assert.Equal(t, models.DefaultCategoryIcon, cats[0].Icon)
	assert.Equal(t, "Dessert", cats[1].Name)
	assert.Equal(t, models.DefaultCategoryIcon, cats[1].Icon)
	assert.Equal(t, "https://cdn.test/seafood.svg", cats[2].Icon)
}

func TestCategoryRestaurantsMatchWholeName(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	testutil.Seed(t, s.db,
		testutil.Restaurant("p1", "Sushi Tei", 500, "3", "Japanese"),
		testutil.Restaurant("p2", "Ramen Ichiraku", 120, "2", "Japanese", "Ramen"),
		testutil.Restaurant("p3", "Japan Town Bakery", 80, "1", "Japan"),
		testutil.Restaurant("p4", "Warung Ramen", 300, "1", "Indonesian"),
	)

	rec := s.get("/api/categories/japanese/restaurants?limit=1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	assert.Equal(t, 1, env.Meta.Limit)

	rows := decodeData[[]models.Restaurant](t, rec)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sushi Tei", rows[0].GofoodName)

	page2 := decodeData[[]models.Restaurant](t, s.get("/api/categories/Japanese/restaurants?limit=1&page=2"))
	require.Len(t, page2, 1)
	assert.Equal(t, "Ramen Ichiraku", page2[0].GofoodName)
}

func TestCategoryRestaurantsEmptyIsNotAnError(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)

	rec := s.get("/api/categories/Martabak/restaurants")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData[[]models.Restaurant](t, rec))
	assert.Equal(t, 0, decode(t, rec).Meta.Total)
}

func TestHomePicksRestaurantsAndCategories(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)

	restaurants := make([]models.Restaurant, 0, 15)
	for i := range 15 {
		restaurants = append(restaurants, testutil.Restaurant(fmt.Sprintf("p%d", i), fmt.Sprintf("Resto %d", i), i, "1"))
	}
	require.NoError(t, s.db.Create(&restaurants).Error)

	categories := make([]models.Category, 0, 12)
	for i := range 12 {
		categories = append(categories, models.Category{Name: fmt.Sprintf("Kategori %02d", i)})
	}
	require.NoError(t, s.db.Create(&categories).Error)

	for range 5 {
		rec := s.get("/api/home")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		page := decodeData[models.HomePage](t, rec)
		assert.NotEmpty(t, page.Restaurants)
		assert.LessOrEqual(t, len(page.Restaurants), 10)
		assert.NotEmpty(t, page.Categories)
		assert.LessOrEqual(t, len(page.Categories), 8)
		// the first category by id is always skipped
		for _, c := range page.Categories {
			assert.NotEqual(t, "Kategori 00", c.Name)
			assert.NotEmpty(t, c.Icon)
		}
		assert.Nil(t, page.User)
	}
}

func TestHomeIncludesSignedInUser(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)
	_, cookie := s.signUp("rina@example.com", "Rina")

	rec := s.do(request{path: "/api/home", cookie: cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeData[models.HomePage](t, rec)
	require.NotNil(t, page.User)
	assert.Equal(t, "rina@example.com", page.User.Email)
	assert.Empty(t, page.Restaurants)
	assert.NotNil(t, page.Restaurants)
}

func TestRestaurantDetail(t *testing.T) {
	testutil.NoRedis(t)
	s := newServer(t)

	everyDay := testutil.Restaurant("ChIJ-open", "Ramen Ichiraku", 10, "2")
	everyDay.OpeningHours = datatypes.JSON(`{
		"monday":"08:00-20:00","tuesday":"08:00-20:00","wednesday":"08:00-20:00",
		"thursday":"08:00-20:00","friday":"08:00-20:00","saturday":"08:00-20:00",
		"sunday":"08:00-20:00"}`)
	noHours := testutil.Restaurant("ChIJ-none", "Sushi Tei", 20, "3")
	noHours.OpeningHours = nil
	testutil.Seed(t, s.db, everyDay, noHours)

	rec := s.get("/api/restos/ChIJ-open")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeData[models.RestaurantDetail](t, rec)
	assert.Equal(t, "Ramen Ichiraku", detail.GofoodName)
	require.NotNil(t, detail.TodayHours)
	assert.Equal(t, "08:00-20:00", *detail.TodayHours)

	rec = s.get("/api/restos/ChIJ-none")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"today_hours":null`)

	rec = s.get("/api/restos/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Restaurant not found", decode(t, rec).Message)
}
