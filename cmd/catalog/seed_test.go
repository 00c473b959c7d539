package main

import (
	"testing"

	"github.com/ruthvic2255/cycle-companion/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogDecodes(t *testing.T) {
	catalog, err := decodeCatalog(data.Catalog)
	require.NoError(t, err)

	assert.NotEmpty(t, catalog.ExerciseVideos)
	assert.NotEmpty(t, catalog.FoodVideos)
	assert.NotEmpty(t, catalog.SuggestedFoods)
	for _, v := range catalog.ExerciseVideos {
		assert.NotEmpty(t, v.Title)
		assert.NotEmpty(t, v.YoutubeURL)
	}
	for _, f := range catalog.SuggestedFoods {
		assert.NotEmpty(t, f.Name)
	}
}

func TestDecodeCatalogRejectsUnknownKeys(t *testing.T) {
	_, err := decodeCatalog([]byte("exercise_videos:\n  - title: x\n    youtube_link: y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")
}

func TestDecodeCatalogOptionalFields(t *testing.T) {
	catalog, err := decodeCatalog([]byte(`
suggested_foods:
  - name: Oats
    is_active: false
`))
	require.NoError(t, err)
	require.Len(t, catalog.SuggestedFoods, 1)

	food := catalog.SuggestedFoods[0]
	assert.Nil(t, food.DisplayOrder)
	require.NotNil(t, food.IsActive)
	assert.False(t, *food.IsActive)
}
