package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDataHandler serves the personal data forms. Every route sits behind the
// session gate and writes through the user pool.
type UserDataHandler struct {
	DB    *gorm.DB
	Guard *forms.Guard
	Log   *zap.Logger
}

// NewUserDataHandler wires the personal data forms
func NewUserDataHandler(db *gorm.DB, guard *forms.Guard, log *zap.Logger) *UserDataHandler {
	if guard == nil {
		guard = forms.NewGuard()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UserDataHandler{DB: db, Guard: guard, Log: log}
}

// ProfileResponse is the profile form state
type ProfileResponse struct {
	Profile forms.ProfileDraft `json:"profile"`
	Email   string             `json:"email,omitempty"`
	Exists  bool               `json:"exists"`
}

// GetProfile handles GET /api/profile
// @Summary Get profile
// @Description Load the profile form, empty when the user has not saved one
// @Tags Profile
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [get]
func (h *UserDataHandler) GetProfile(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	profile, err := services.GetProfile(c.UserContext(), h.DB, user.ID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return storeFailed(c, h.Log, err, "Failed to load profile", user.ID, nil)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		Profile: forms.NewProfileDraft(profile),
		Email:   user.Email,
		Exists:  profile != nil,
	})
}

// UpdateProfile handles PUT /api/profile
// @Summary Save profile
// @Description Validate and upsert the profile keyed by the signed-in user
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body forms.ProfileDraft true "Profile form"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [put]
func (h *UserDataHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	var draft forms.ProfileDraft
	if ok, err := decodeDraft(c, &draft); !ok {
		return err
	}

	release, ok := h.Guard.TryAcquire(user.ID, forms.FormProfile)
	if !ok {
		return busyResponse(c)
	}
	defer release()

	profile := draft.Model(user.ID)
	if err := services.UpsertProfile(c.UserContext(), h.DB, &profile); err != nil {
		return storeFailed(c, h.Log, err, "Failed to update profile", user.ID, draft)
	}

	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Profile updated successfully!", ProfileResponse{
		Profile: forms.NewProfileDraft(&profile),
		Email:   user.Email,
		Exists:  true,
	})
}

// PhysicalDataResponse is the physical data form seeded from the latest sample
type PhysicalDataResponse struct {
	PhysicalData forms.PhysicalDataDraft `json:"physical_data"`
	RecordedAt   string                  `json:"recorded_at,omitempty"`
}

// GetPhysicalData handles GET /api/physical-data
// @Summary Get latest physical data
// @Description Load the physical data form from the most recent sample
// @Tags PhysicalData
// @Produce json
// @Success 200 {object} PhysicalDataResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /physical-data [get]
func (h *UserDataHandler) GetPhysicalData(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	sample, err := services.LatestPhysicalData(c.UserContext(), h.DB, user.ID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return storeFailed(c, h.Log, err, "Failed to load physical data", user.ID, nil)
	}
	return c.Status(fiber.StatusOK).JSON(physicalDataResponse(sample))
}

// CreatePhysicalData handles POST /api/physical-data
// @Summary Record physical data
// @Description Validate and append a physical data sample
// @Tags PhysicalData
// @Accept json
// @Produce json
// @Param sample body forms.PhysicalDataDraft true "Physical data form"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /physical-data [post]
func (h *UserDataHandler) CreatePhysicalData(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	var draft forms.PhysicalDataDraft
	if ok, err := decodeDraft(c, &draft); !ok {
		return err
	}

	release, ok := h.Guard.TryAcquire(user.ID, forms.FormPhysicalData)
	if !ok {
		return busyResponse(c)
	}
	defer release()

	sample := draft.Model(user.ID)
	if err := services.CreatePhysicalData(c.UserContext(), h.DB, &sample); err != nil {
		return storeFailed(c, h.Log, err, "Failed to save physical data", user.ID, draft)
	}

	latest, err := services.LatestPhysicalData(c.UserContext(), h.DB, user.ID)
	if err != nil {
		h.Log.Warn("Failed to refresh physical data", zap.String("user_id", user.ID), zap.Error(err))
		latest = &sample
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "Physical data recorded successfully!",
		physicalDataResponse(latest))
}

func physicalDataResponse(sample *models.PhysicalData) PhysicalDataResponse {
	res := PhysicalDataResponse{PhysicalData: forms.NewPhysicalDataDraft(sample)}
	if sample != nil {
		res.RecordedAt = sample.RecordedAt.UTC().Format(time.RFC3339)
	}
	return res
}

// GetNotificationSettings handles GET /api/notifications
// @Summary Get notification settings
// @Description Load notification settings, or the defaults when none are saved
// @Tags Notifications
// @Produce json
// @Success 200 {object} forms.NotificationDraft
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notifications [get]
func (h *UserDataHandler) GetNotificationSettings(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	settings, err := services.GetNotificationSettings(c.UserContext(), h.DB, user.ID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return storeFailed(c, h.Log, err, "Failed to load notification settings", user.ID, nil)
	}
	return c.Status(fiber.StatusOK).JSON(forms.NewNotificationDraft(settings))
}

// UpdateNotificationSettings handles PUT /api/notifications
// @Summary Save notification settings
// @Description Validate and upsert the single settings row of the signed-in user
// @Tags Notifications
// @Accept json
// @Produce json
// @Param settings body forms.NotificationDraft true "Notification settings form"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /notifications [put]
func (h *UserDataHandler) UpdateNotificationSettings(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	// Fields left out of the body keep their defaults
	draft := forms.NewNotificationDraft(nil)
	if ok, err := decodeDraft(c, &draft); !ok {
		return err
	}

	release, ok := h.Guard.TryAcquire(user.ID, forms.FormNotifications)
	if !ok {
		return busyResponse(c)
	}
	defer release()

	settings := draft.Model(user.ID)
	if err := services.UpsertNotificationSettings(c.UserContext(), h.DB, &settings); err != nil {
		return storeFailed(c, h.Log, err, "Failed to update settings", user.ID, draft)
	}

	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Notification settings updated!",
		forms.NewNotificationDraft(&settings))
}
