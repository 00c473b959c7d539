package handlers_test

import (
	"context"
	"testing"

	"github.com/ruthvic2255/cycle-companion/internal/database"
	"github.com/ruthvic2255/cycle-companion/internal/handlers"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"github.com/ruthvic2255/cycle-companion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, ta *testApp) {
	t.Helper()

	_, err := services.SeedCatalog(context.Background(), ta.db, services.Catalog{
		ExerciseVideos: []models.ExerciseVideo{
			{Title: "Evening stretch", YoutubeURL: "https://youtu.be/b", DisplayOrder: testutil.Ptr(2)},
			{Title: "Unordered walk", YoutubeURL: "https://youtu.be/c"},
			{Title: "Morning yoga", YoutubeURL: "https://youtu.be/a", DisplayOrder: testutil.Ptr(1)},
			{Title: "Retired cardio", YoutubeURL: "https://youtu.be/d", DisplayOrder: testutil.Ptr(0), IsActive: testutil.Ptr(false)},
		},
		FoodVideos: []models.FoodVideo{
			{Title: "Iron rich lunch", YoutubeURL: "https://youtu.be/e", DisplayOrder: testutil.Ptr(1)},
		},
		SuggestedFoods: []models.SuggestedFood{
			{Name: "Spinach", Category: testutil.Ptr("Greens"), DisplayOrder: testutil.Ptr(2)},
			{Name: "Lentils", Category: testutil.Ptr("Legumes"), DisplayOrder: testutil.Ptr(1)},
		},
	})
	require.NoError(t, err)
}

func TestExerciseVideosOrdering(t *testing.T) {
	ta := setupApp(t)
	seedCatalog(t, ta)

	resp := ta.do(t, "GET", "/api/exercise/videos", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.ExerciseVideosResponse
	testutil.ParseJSON(t, resp, &body)
	require.Len(t, body.Videos, 3)
	assert.Equal(t, "Morning yoga", body.Videos[0].Title)
	assert.Equal(t, "Evening stretch", body.Videos[1].Title)
	assert.Equal(t, "Unordered walk", body.Videos[2].Title)
	assert.Empty(t, body.Message)
}

func TestCatalogEmptyMessages(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/exercise/videos", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)
	var videos handlers.ExerciseVideosResponse
	testutil.ParseJSON(t, resp, &videos)
	assert.Empty(t, videos.Videos)
	assert.Equal(t, "No exercise videos available at the moment.", videos.Message)

	resp = ta.do(t, "GET", "/api/nutrition/foods", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)
	var foods handlers.SuggestedFoodsResponse
	testutil.ParseJSON(t, resp, &foods)
	assert.Equal(t, "No suggested foods available at the moment.", foods.Message)

	resp = ta.do(t, "GET", "/api/nutrition/videos", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)
	var food handlers.FoodVideosResponse
	testutil.ParseJSON(t, resp, &food)
	assert.Equal(t, "No food videos available at the moment.", food.Message)
}

func TestNutritionCombined(t *testing.T) {
	ta := setupApp(t)
	seedCatalog(t, ta)

	resp := ta.do(t, "GET", "/api/nutrition", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.NutritionResponse
	testutil.ParseJSON(t, resp, &body)
	require.Len(t, body.SuggestedFoods.Foods, 2)
	assert.Equal(t, "Lentils", body.SuggestedFoods.Foods[0].Name)
	assert.Equal(t, "Spinach", body.SuggestedFoods.Foods[1].Name)
	require.Len(t, body.FoodVideos.Videos, 1)
	assert.Equal(t, "Iron rich lunch", body.FoodVideos.Videos[0].Title)
}

func TestNutritionFailsAsAUnit(t *testing.T) {
	ta := setupApp(t)
	seedCatalog(t, ta)
	require.NoError(t, database.Close(ta.db))

	resp := ta.do(t, "GET", "/api/nutrition", aliceToken, nil)
	testutil.AssertStatus(t, resp, 500)

	var body envelope
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "Failed to load nutrition data", body.Message)
	assert.Equal(t, "data.store", body.Type)
	assert.Empty(t, body.Data)
}
