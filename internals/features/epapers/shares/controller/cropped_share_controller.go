// internals/features/epapers/shares/controller/cropped_share_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"koranku_backend/internals/configs"
	editionModel "koranku_backend/internals/features/epapers/editions/model"
	editionService "koranku_backend/internals/features/epapers/editions/service"
	dto "koranku_backend/internals/features/epapers/shares/dto"
	model "koranku_backend/internals/features/epapers/shares/model"
	helper "koranku_backend/internals/helpers"
)

type CroppedShareController struct {
	DB    *gorm.DB
	Store *editionService.ArtifactStore
}

func NewCroppedShareController(db *gorm.DB, store *editionService.ArtifactStore) *CroppedShareController {
	return &CroppedShareController{DB: db, Store: store}
}

var validate = validator.New()

// =========================================================
// CREATE - POST /api/epapers/crop-share  (publisher)
// =========================================================
func (h *CroppedShareController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CroppedShareCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	editionID, _ := uuid.Parse(req.EditionID)
	pageID, _ := uuid.Parse(req.PageID)

	// The page must belong to the claimed edition.
	var page editionModel.EditionPageModel
	if err := h.DB.
		Where("edition_page_id = ? AND edition_page_edition_id = ?", pageID, editionID).
		First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Page not found in this e-paper")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch page")
	}

	token := uuid.NewString()
	imagePath, err := editionService.CropPageImage(
		h.Store, page.EditionPageImagePath,
		req.Crop.X, req.Crop.Y, req.Crop.Width, req.Crop.Height,
		token,
	)
	if err != nil {
		if errors.Is(err, editionService.ErrCropOutOfBounds) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Crop rectangle is outside the page image")
		}
		log.Printf("[ERROR] crop page %s: %v", pageID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to crop page image")
	}

	now := time.Now()
	share := model.CroppedShareModel{
		CroppedShareEditionID: editionID,
		CroppedSharePageID:    pageID,
		CroppedShareCrop:      req.Crop.ToJSON(),
		CroppedShareImagePath: imagePath,
		CroppedShareToken:     token,
		CroppedShareURL:       configs.BaseURL + "/api/epapers/share/" + token,
		CroppedShareExpiresAt: now.Add(model.ShareTTL),
		CroppedShareCreatedBy: userID,
	}
	if err := h.DB.Create(&share).Error; err != nil {
		_ = h.Store.Remove(imagePath)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save share")
	}

	return helper.JsonCreated(c, "Share created successfully", dto.CroppedShareResponse{
		Token:     share.CroppedShareToken,
		ShareURL:  share.CroppedShareURL,
		ImagePath: share.CroppedShareImagePath,
		ExpiresAt: share.CroppedShareExpiresAt.Format(time.RFC3339),
	})
}

// =========================================================
// LOOKUP - GET /api/epapers/share/:token  (public)
// Expired and unknown tokens are indistinguishable to the caller.
// =========================================================
func (h *CroppedShareController) GetByToken(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return helper.JsonError(c, fiber.StatusNotFound, "Share not found")
	}

	var share model.CroppedShareModel
	if err := h.DB.Where("cropped_share_token = ?", token).First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Share not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch share")
	}
	if share.IsExpired(time.Now()) {
		return helper.JsonError(c, fiber.StatusNotFound, "Share not found")
	}

	return helper.JsonOK(c, "ok", share)
}
