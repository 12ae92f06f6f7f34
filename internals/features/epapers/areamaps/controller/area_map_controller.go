// internals/features/epapers/areamaps/controller/area_map_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "koranku_backend/internals/features/epapers/areamaps/dto"
	model "koranku_backend/internals/features/epapers/areamaps/model"
	service "koranku_backend/internals/features/epapers/areamaps/service"
	editionModel "koranku_backend/internals/features/epapers/editions/model"
	helper "koranku_backend/internals/helpers"
)

type AreaMapController struct {
	DB *gorm.DB
}

func NewAreaMapController(db *gorm.DB) *AreaMapController {
	return &AreaMapController{DB: db}
}

var validate = validator.New()

// pageInEdition verifies the page row exists under the claimed edition.
// Both single and batch create run this per item.
func (h *AreaMapController) pageInEdition(pageID, editionID uuid.UUID) (bool, error) {
	var cnt int64
	err := h.DB.Model(&editionModel.EditionPageModel{}).
		Where("edition_page_id = ? AND edition_page_edition_id = ?", pageID, editionID).
		Count(&cnt).Error
	return cnt > 0, err
}

// =========================================================
// CREATE - POST /api/areamaps
// =========================================================
func (h *AreaMapController) Create(c *fiber.Ctx) error {
	var req dto.AreaMapCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.ValidateKindTarget(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// The page must belong to the claimed edition.
	ok, err := h.pageInEdition(req.PageID, req.EditionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify page")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Page not found")
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create area map")
	}
	return helper.JsonCreated(c, "Area map created successfully", m)
}

// =========================================================
// BATCH CREATE - POST /api/areamaps/batch
// Items are persisted one by one. A failing item stops the loop but
// leaves the earlier ones in place: at-least-effort, not atomic.
// =========================================================
func (h *AreaMapController) BatchCreate(c *fiber.Ctx) error {
	var req dto.AreaMapBatchCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Areas array is required")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	createdIDs := make([]uuid.UUID, 0, len(req.Areas))
	for i := range req.Areas {
		area := &req.Areas[i]
		area.Normalize()
		if err := area.ValidateKindTarget(); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		ok, err := h.pageInEdition(area.PageID, area.EditionID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify page")
		}
		if !ok {
			return helper.JsonError(c, fiber.StatusNotFound, "Page not found")
		}

		m, err := area.ToModel()
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if err := h.DB.Create(m).Error; err != nil {
			log.Printf("[ERROR] batch area map item %d: %v", i+1, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed while creating area maps")
		}
		createdIDs = append(createdIDs, m.AreaMapID)
	}

	return helper.JsonCreated(c, "Area maps created successfully", fiber.Map{
		"area_map_ids": createdIDs,
	})
}

// =========================================================
// UPDATE - PUT /api/areamaps/:id
// =========================================================
func (h *AreaMapController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid area map id")
	}

	var req dto.AreaMapUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates, err := req.ToUpdates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	res := h.DB.Model(&model.AreaMapModel{}).
		Where("area_map_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update area map")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Area map not found")
	}
	return helper.JsonUpdated(c, "Area map updated successfully", nil)
}

// =========================================================
// DELETE - DELETE /api/areamaps/:id
// =========================================================
func (h *AreaMapController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid area map id")
	}

	res := h.DB.Where("area_map_id = ?", id).Delete(&model.AreaMapModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete area map")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Area map not found")
	}
	return helper.JsonDeleted(c, "Area map deleted successfully", nil)
}

// =========================================================
// GET - /api/areamaps/e-paper/:e_paper_id
// Active areas of every page, ordered by page number.
// =========================================================
func (h *AreaMapController) GetByEdition(c *fiber.Ctx) error {
	editionID, err := uuid.Parse(strings.TrimSpace(c.Params("e_paper_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	var areas []dto.AreaMapWithPageNumber
	if err := h.DB.
		Table("area_maps AS am").
		Select("am.*, ep.edition_page_number AS page_number").
		Joins("JOIN edition_pages AS ep ON ep.edition_page_id = am.area_map_page_id").
		Where("am.area_map_edition_id = ? AND am.area_map_is_active = TRUE", editionID).
		Order("ep.edition_page_number, am.area_map_created_at").
		Find(&areas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch area maps")
	}
	return helper.JsonOK(c, "ok", areas)
}

// =========================================================
// GET - /api/areamaps/page/:page_id
// Active areas of one page, joined with the linked ad's display fields.
// =========================================================
func (h *AreaMapController) GetByPage(c *fiber.Ctx) error {
	pageID, err := uuid.Parse(strings.TrimSpace(c.Params("page_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid page id")
	}

	var areas []dto.AreaMapWithAd
	if err := h.DB.
		Table("area_maps AS am").
		Select("am.*, ad.advertisement_image_path AS ad_image, ad.advertisement_link_url AS ad_link").
		Joins("LEFT JOIN advertisements AS ad ON ad.advertisement_id = am.area_map_ad_id").
		Where("am.area_map_page_id = ? AND am.area_map_is_active = TRUE", pageID).
		Order("am.area_map_created_at").
		Find(&areas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch area maps")
	}
	return helper.JsonOK(c, "ok", areas)
}

// =========================================================
// GET - /api/areamaps/stats/:e_paper_id
// =========================================================
func (h *AreaMapController) Stats(c *fiber.Ctx) error {
	editionID, err := uuid.Parse(strings.TrimSpace(c.Params("e_paper_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	var stats dto.AreaMapStats
	if err := h.DB.Model(&model.AreaMapModel{}).
		Select(`
			COUNT(*) AS total_areas,
			COUNT(*) FILTER (WHERE area_map_type = 'link')     AS link_areas,
			COUNT(*) FILTER (WHERE area_map_type = 'ad')       AS ad_areas,
			COUNT(*) FILTER (WHERE area_map_type = 'page_nav') AS nav_areas
		`).
		Where("area_map_edition_id = ? AND area_map_is_active = TRUE", editionID).
		Take(&stats).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch area map stats")
	}
	return helper.JsonOK(c, "ok", stats)
}

// =========================================================
// POST - /api/areamaps/test-point/:page_id
// Returns every active area whose polygon contains the point.
// =========================================================
func (h *AreaMapController) TestPoint(c *fiber.Ctx) error {
	pageID, err := uuid.Parse(strings.TrimSpace(c.Params("page_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid page id")
	}

	var req dto.HitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	var areas []model.AreaMapModel
	if err := h.DB.
		Where("area_map_page_id = ? AND area_map_is_active = TRUE", pageID).
		Find(&areas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch area maps")
	}

	hits := make([]model.AreaMapModel, 0)
	for _, area := range areas {
		pts, err := dto.DecodeCoordinates(area.AreaMapCoordinates)
		if err != nil {
			log.Printf("[WARN] area map %s has bad coordinates: %v", area.AreaMapID, err)
			continue
		}
		if service.PointInPolygon(req.X, req.Y, pts) {
			hits = append(hits, area)
		}
	}
	return helper.JsonOK(c, "ok", hits)
}
