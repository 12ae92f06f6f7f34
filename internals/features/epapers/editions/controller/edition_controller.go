// internals/features/epapers/editions/controller/edition_controller.go
package controller

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"koranku_backend/internals/constants"
	accessService "koranku_backend/internals/features/epapers/access/service"
	areaMapDto "koranku_backend/internals/features/epapers/areamaps/dto"
	areaMapModel "koranku_backend/internals/features/epapers/areamaps/model"
	dto "koranku_backend/internals/features/epapers/editions/dto"
	model "koranku_backend/internals/features/epapers/editions/model"
	service "koranku_backend/internals/features/epapers/editions/service"
	shareModel "koranku_backend/internals/features/epapers/shares/model"
	helper "koranku_backend/internals/helpers"
)

const maxImageFiles = 100

type EditionController struct {
	DB     *gorm.DB
	Store  *service.ArtifactStore
	Ingest *service.Ingestor
	Access *accessService.Evaluator
}

func NewEditionController(db *gorm.DB, store *service.ArtifactStore) *EditionController {
	return &EditionController{
		DB:     db,
		Store:  store,
		Ingest: service.NewIngestor(db, store),
		Access: accessService.NewEvaluator(db),
	}
}

var validate = validator.New()

// =========================================================
// LIST - GET /api/epapers
// =========================================================
func (h *EditionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	var total int64
	if err := h.DB.Model(&model.EditionModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch e-papers")
	}

	var items []dto.EditionListItem
	if err := h.DB.
		Table("editions AS e").
		Select(`e.*,
			(SELECT COUNT(*) FROM edition_pages p
			  WHERE p.edition_page_edition_id = e.edition_id) AS page_count,
			(SELECT p.edition_page_image_path FROM edition_pages p
			  WHERE p.edition_page_edition_id = e.edition_id
			  ORDER BY p.edition_page_number ASC LIMIT 1) AS first_page_image`).
		Order("e.edition_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch e-papers")
	}

	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =========================================================
// DETAIL - GET /api/epapers/:id  (optional auth)
// The access decision trims the page list before anything else touches
// it; hidden pages never reach the payload.
// =========================================================
func (h *EditionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	var edition model.EditionModel
	if err := h.DB.Where("edition_id = ?", id).First(&edition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "E-paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch e-paper")
	}

	var pages []model.EditionPageModel
	if err := h.DB.
		Where("edition_page_edition_id = ?", id).
		Order("edition_page_number").
		Find(&pages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch pages")
	}
	totalPages := len(pages)

	callerID := helper.GetOptionalUserID(c)
	decision := h.Access.Check(c.UserContext(), callerID, time.Now())

	visible := service.VisiblePages(pages, decision.PagesAllowed)

	withAreas, err := h.attachAreaMaps(visible)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch area maps")
	}

	resp := dto.EditionDetailResponse{
		EditionModel: edition,
		Pages:        withAreas,
		TotalPages:   totalPages,
		AccessInfo: dto.AccessInfo{
			CanAccess:    decision.CanAccess,
			AccessType:   decision.AccessType,
			PagesAllowed: decision.PagesAllowed,
			PagesTotal:   totalPages,
			IsSubscriber: decision.IsSubscriber,
			IsFreePlan:   decision.IsFreePlan,
		},
	}
	// Denial is not an error: restricted payload + explanatory metadata.
	if !decision.CanAccess {
		resp.PagesLimited = true
		if decision.AccessType == accessService.AccessUnauthenticated {
			resp.Message = "Please login to access this e-paper"
		} else {
			resp.Message = "Please subscribe to access all pages"
		}
	}
	return helper.JsonOK(c, "ok", resp)
}

// attachAreaMaps loads the active hotspots of the visible pages only.
func (h *EditionController) attachAreaMaps(pages []model.EditionPageModel) ([]dto.PageWithAreaMaps, error) {
	result := make([]dto.PageWithAreaMaps, 0, len(pages))
	if len(pages) == 0 {
		return result, nil
	}

	pageIDs := make([]uuid.UUID, 0, len(pages))
	for _, p := range pages {
		pageIDs = append(pageIDs, p.EditionPageID)
	}

	var areas []areaMapDto.AreaMapWithAd
	if err := h.DB.
		Table("area_maps AS am").
		Select("am.*, ad.advertisement_image_path AS ad_image, ad.advertisement_link_url AS ad_link").
		Joins("LEFT JOIN advertisements AS ad ON ad.advertisement_id = am.area_map_ad_id").
		Where("am.area_map_page_id IN ? AND am.area_map_is_active = TRUE", pageIDs).
		Order("am.area_map_created_at").
		Find(&areas).Error; err != nil {
		return nil, err
	}

	byPage := make(map[uuid.UUID][]areaMapDto.AreaMapWithAd, len(pages))
	for _, a := range areas {
		byPage[a.AreaMapPageID] = append(byPage[a.AreaMapPageID], a)
	}

	for _, p := range pages {
		ams := byPage[p.EditionPageID]
		if ams == nil {
			ams = []areaMapDto.AreaMapWithAd{}
		}
		result = append(result, dto.PageWithAreaMaps{EditionPageModel: p, AreaMaps: ams})
	}
	return result, nil
}

// =========================================================
// CREATE - POST /api/epapers  (publisher, multipart)
// The edition row is staged as a zero-page draft, then backfilled once
// rasterization finishes. A total ingest failure compensating-deletes
// the row and any stored files.
// =========================================================
func (h *EditionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EditionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := map[string][]string{}
			for _, fe := range verrs {
				fields[fe.Field()] = append(fields[fe.Field()], fe.Tag())
			}
			return helper.JsonValidationError(c, fields)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Multipart form is required")
	}
	pdfFiles := form.File["pdf"]
	imageFiles := form.File["images"]
	if len(pdfFiles) == 0 && len(imageFiles) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "PDF or image files are required")
	}
	if len(imageFiles) > maxImageFiles {
		return helper.JsonError(c, fiber.StatusBadRequest, "Too many image files")
	}

	// Store the uploaded PDF first; it wins over images when both arrive.
	var pdfSource *service.SourcePDF
	if len(pdfFiles) > 0 {
		fh := pdfFiles[0]
		if constants.DetectUploadKind(fh.Filename, fh.Header.Get("Content-Type")) != constants.UploadKindPDF {
			return helper.JsonError(c, fiber.StatusBadRequest, "The pdf field only accepts PDF documents")
		}
		pdfSource, err = h.storeSourcePDF(fh)
		if err != nil {
			log.Printf("[ERROR] store pdf: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store uploaded PDF")
		}
	}

	var images []service.SourceImage
	if pdfSource == nil {
		images, err = readSourceImages(imageFiles)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	src, err := service.ResolveSource(pdfSource, images)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	edition := req.ToModel(userID)
	if pdfSource != nil {
		edition.EditionPDFPath = &pdfSource.WebPath
	}
	slug, err := helper.GenerateUniqueSlug(h.DB, helper.SlugOptions{
		Table:       "editions",
		SlugColumn:  "edition_slug",
		DefaultBase: "edition",
	}, req.Title)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}
	edition.EditionSlug = slug

	if err := h.DB.Create(edition).Error; err != nil {
		if pdfSource != nil {
			_ = h.Store.Remove(pdfSource.WebPath)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create e-paper")
	}

	result, err := h.Ingest.Ingest(c.UserContext(), edition.EditionID, src)
	if err != nil {
		log.Printf("[ERROR] ingest edition %s: %v", edition.EditionID, err)
		// Compensating cleanup: no zero-page orphan survives a total failure.
		h.DB.Where("edition_id = ?", edition.EditionID).Delete(&model.EditionModel{})
		if pdfSource != nil {
			_ = h.Store.Remove(pdfSource.WebPath)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process the uploaded document")
	}

	h.linkCategories(edition.EditionID, req.CategoryIDs())

	return helper.JsonCreated(c, "E-paper created successfully", fiber.Map{
		"e_paper_id":  edition.EditionID,
		"total_pages": result.TotalPages,
	})
}

func (h *EditionController) storeSourcePDF(fh *multipart.FileHeader) (*service.SourcePDF, error) {
	data, err := readFileHeader(fh)
	if err != nil {
		return nil, err
	}
	name := service.SourceFilename(uuid.New(), fh.Filename)
	webPath, err := h.Store.Write(service.BucketPapers, name, data)
	if err != nil {
		return nil, err
	}
	return &service.SourcePDF{
		AbsPath: h.Store.AbsPath(service.BucketPapers, name),
		WebPath: webPath,
	}, nil
}

func readSourceImages(files []*multipart.FileHeader) ([]service.SourceImage, error) {
	images := make([]service.SourceImage, 0, len(files))
	for _, fh := range files {
		if constants.DetectUploadKind(fh.Filename, fh.Header.Get("Content-Type")) != constants.UploadKindImage {
			return nil, errors.New("the images field only accepts image files, got " + fh.Filename)
		}
		data, err := readFileHeader(fh)
		if err != nil {
			return nil, errors.New("failed to read uploaded image " + fh.Filename)
		}
		images = append(images, service.SourceImage{Filename: fh.Filename, Data: data})
	}
	return images, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *EditionController) linkCategories(editionID uuid.UUID, categoryIDs []uuid.UUID) {
	for _, catID := range categoryIDs {
		link := model.EditionCategoryModel{
			EditionCategoryEditionID:  editionID,
			EditionCategoryCategoryID: catID,
		}
		if err := h.DB.Create(&link).Error; err != nil {
			log.Printf("[WARN] link category %s: %v", catID, err)
		}
	}
}

// =========================================================
// UPDATE - PUT /api/epapers/:id  (publisher)
// =========================================================
func (h *EditionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	var req dto.EditionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No fields to update")
	}

	res := h.DB.Model(&model.EditionModel{}).
		Where("edition_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update e-paper")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "E-paper not found")
	}
	return helper.JsonUpdated(c, "E-paper updated successfully", nil)
}

// =========================================================
// PUBLISH - POST /api/epapers/:id/publish  (publisher)
// =========================================================
func (h *EditionController) Publish(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	now := time.Now()
	res := h.DB.Model(&model.EditionModel{}).
		Where("edition_id = ?", id).
		Updates(map[string]any{
			"edition_status":       model.EditionStatusPublished,
			"edition_publish_date": now,
		})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to publish e-paper")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "E-paper not found")
	}
	return helper.JsonUpdated(c, "E-paper published successfully", nil)
}

// =========================================================
// DELETE - DELETE /api/epapers/:id  (publisher)
// Cascade: files go alongside the rows — source PDF, thumbnail, every
// page image and every crop derived from them.
// =========================================================
func (h *EditionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid edition id")
	}

	var edition model.EditionModel
	if err := h.DB.Where("edition_id = ?", id).First(&edition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "E-paper not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch e-paper")
	}

	// Collect file paths before the rows disappear.
	filePaths := make([]string, 0, 8)
	if edition.EditionPDFPath != nil {
		filePaths = append(filePaths, *edition.EditionPDFPath)
	}
	if edition.EditionThumbnailPath != nil {
		filePaths = append(filePaths, *edition.EditionThumbnailPath)
	}

	var pages []model.EditionPageModel
	if err := h.DB.Where("edition_page_edition_id = ?", id).Find(&pages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch pages")
	}
	for _, p := range pages {
		filePaths = append(filePaths, p.EditionPageImagePath)
	}

	var shares []shareModel.CroppedShareModel
	if err := h.DB.Where("cropped_share_edition_id = ?", id).Find(&shares).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch shares")
	}
	for _, s := range shares {
		filePaths = append(filePaths, s.CroppedShareImagePath)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_map_edition_id = ?", id).Delete(&areaMapModel.AreaMapModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cropped_share_edition_id = ?", id).Delete(&shareModel.CroppedShareModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("edition_page_edition_id = ?", id).Delete(&model.EditionPageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("edition_category_edition_id = ?", id).Delete(&model.EditionCategoryModel{}).Error; err != nil {
			return err
		}
		return tx.Where("edition_id = ?", id).Delete(&model.EditionModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete e-paper")
	}

	for _, p := range filePaths {
		if err := h.Store.Remove(p); err != nil {
			log.Printf("[WARN] remove file %s: %v", p, err)
		}
	}
	return helper.JsonDeleted(c, "E-paper deleted successfully", nil)
}
