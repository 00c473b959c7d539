package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Placeholders shown for empty catalog lists
const (
	noExerciseVideosMessage = "No exercise videos available at the moment."
	noFoodVideosMessage     = "No food videos available at the moment."
	noSuggestedFoodsMessage = "No suggested foods available at the moment."
)

// CatalogHandler serves the curated content lists from the catalog pool
type CatalogHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// ExerciseVideosResponse is the exercise page state
type ExerciseVideosResponse struct {
	Videos  []models.ExerciseVideo `json:"videos"`
	Message string                 `json:"message,omitempty"`
}

// FoodVideosResponse is the food video list
type FoodVideosResponse struct {
	Videos  []models.FoodVideo `json:"videos"`
	Message string             `json:"message,omitempty"`
}

// SuggestedFoodsResponse is the suggested food list
type SuggestedFoodsResponse struct {
	Foods   []models.SuggestedFood `json:"foods"`
	Message string                 `json:"message,omitempty"`
}

// NutritionResponse is the nutrition page state
type NutritionResponse struct {
	SuggestedFoods SuggestedFoodsResponse `json:"suggested_foods"`
	FoodVideos     FoodVideosResponse     `json:"food_videos"`
}

// GetExerciseVideos handles GET /api/exercise/videos
// @Summary List exercise videos
// @Description Active exercise videos in display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} ExerciseVideosResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /exercise/videos [get]
func (h *CatalogHandler) GetExerciseVideos(c *fiber.Ctx) error {
	videos, err := services.ListExerciseVideos(c.UserContext(), h.DB)
	if err != nil {
		return storeFailed(c, h.Log, err, "Failed to load exercise videos", userIDOf(c), nil)
	}

	res := ExerciseVideosResponse{Videos: videos}
	if len(videos) == 0 {
		res.Message = noExerciseVideosMessage
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// GetFoodVideos handles GET /api/nutrition/videos
// @Summary List food videos
// @Description Active food videos in display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} FoodVideosResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /nutrition/videos [get]
func (h *CatalogHandler) GetFoodVideos(c *fiber.Ctx) error {
	videos, err := services.ListFoodVideos(c.UserContext(), h.DB)
	if err != nil {
		return storeFailed(c, h.Log, err, "Failed to load food videos", userIDOf(c), nil)
	}
	return c.Status(fiber.StatusOK).JSON(foodVideosResponse(videos))
}

// GetSuggestedFoods handles GET /api/nutrition/foods
// @Summary List suggested foods
// @Description Active suggested foods in display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} SuggestedFoodsResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /nutrition/foods [get]
func (h *CatalogHandler) GetSuggestedFoods(c *fiber.Ctx) error {
	foods, err := services.ListSuggestedFoods(c.UserContext(), h.DB)
	if err != nil {
		return storeFailed(c, h.Log, err, "Failed to load suggested foods", userIDOf(c), nil)
	}
	return c.Status(fiber.StatusOK).JSON(suggestedFoodsResponse(foods))
}

// GetNutrition handles GET /api/nutrition
// @Summary Nutrition page
// @Description Suggested foods and food videos, loaded together; either failure fails the page
// @Tags Catalog
// @Produce json
// @Success 200 {object} NutritionResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /nutrition [get]
func (h *CatalogHandler) GetNutrition(c *fiber.Ctx) error {
	var (
		videos []models.FoodVideo
		foods  []models.SuggestedFood
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		var err error
		videos, err = services.ListFoodVideos(ctx, h.DB)
		return err
	})
	g.Go(func() error {
		var err error
		foods, err = services.ListSuggestedFoods(ctx, h.DB)
		return err
	})
	if err := g.Wait(); err != nil {
		return storeFailed(c, h.Log, err, "Failed to load nutrition data", userIDOf(c), nil)
	}

	return c.Status(fiber.StatusOK).JSON(NutritionResponse{
		SuggestedFoods: suggestedFoodsResponse(foods),
		FoodVideos:     foodVideosResponse(videos),
	})
}

func foodVideosResponse(videos []models.FoodVideo) FoodVideosResponse {
	res := FoodVideosResponse{Videos: videos}
	if len(videos) == 0 {
		res.Message = noFoodVideosMessage
	}
	return res
}

func suggestedFoodsResponse(foods []models.SuggestedFood) SuggestedFoodsResponse {
	res := SuggestedFoodsResponse{Foods: foods}
	if len(foods) == 0 {
		res.Message = noSuggestedFoodsMessage
	}
	return res
}
