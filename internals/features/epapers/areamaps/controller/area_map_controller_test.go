package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dto "koranku_backend/internals/features/epapers/areamaps/dto"
	service "koranku_backend/internals/features/epapers/areamaps/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE edition_pages (
		edition_page_id TEXT,
		edition_page_edition_id TEXT NOT NULL,
		edition_page_number INTEGER NOT NULL,
		edition_page_image_path TEXT NOT NULL,
		edition_page_created_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE area_maps (
		area_map_id TEXT,
		area_map_edition_id TEXT NOT NULL,
		area_map_page_id TEXT NOT NULL,
		area_map_type TEXT NOT NULL,
		area_map_coordinates BLOB NOT NULL,
		area_map_link_url TEXT,
		area_map_link_page_number INTEGER,
		area_map_ad_id TEXT,
		area_map_tooltip_text TEXT,
		area_map_is_active INTEGER NOT NULL DEFAULT 1,
		area_map_created_at DATETIME,
		area_map_updated_at DATETIME
	)`).Error)
	return db
}

func insertPage(t *testing.T, db *gorm.DB, pageID, editionID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO edition_pages (edition_page_id, edition_page_edition_id,
		 edition_page_number, edition_page_image_path) VALUES (?, ?, 1, '/uploads/pages/x.jpg')`,
		pageID.String(), editionID.String(),
	).Error)
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	ctrl := NewAreaMapController(db)
	app.Post("/api/areamaps", ctrl.Create)
	app.Post("/api/areamaps/batch", ctrl.BatchCreate)
	return app
}

func linkArea(editionID, pageID uuid.UUID) dto.AreaMapCreateRequest {
	url := "https://example.com"
	return dto.AreaMapCreateRequest{
		EditionID:   editionID,
		PageID:      pageID,
		AreaType:    "link",
		Coordinates: []service.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}},
		LinkURL:     &url,
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func areaMapCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Table("area_maps").Count(&cnt).Error)
	return cnt
}

func TestCreateRejectsForeignPage(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	editionA := uuid.New()
	editionB := uuid.New()
	pageA := uuid.New()
	insertPage(t, db, pageA, editionA)

	resp := postJSON(t, app, "/api/areamaps", linkArea(editionA, pageA))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Same page claimed under a different edition.
	resp = postJSON(t, app, "/api/areamaps", linkArea(editionB, pageA))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 1, areaMapCount(t, db))
}

func TestBatchCreateRejectsForeignPage(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	editionA := uuid.New()
	editionB := uuid.New()
	pageA := uuid.New()
	insertPage(t, db, pageA, editionA)

	// Item 2 claims pageA under editionB; the batch stops there with the
	// same 404 the single create returns, item 1 staying persisted.
	batch := dto.AreaMapBatchCreateRequest{Areas: []dto.AreaMapCreateRequest{
		linkArea(editionA, pageA),
		linkArea(editionB, pageA),
	}}
	resp := postJSON(t, app, "/api/areamaps/batch", batch)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.EqualValues(t, 1, areaMapCount(t, db))
}

func TestBatchCreatePersistsAllValidItems(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	editionA := uuid.New()
	page1 := uuid.New()
	page2 := uuid.New()
	insertPage(t, db, page1, editionA)
	insertPage(t, db, page2, editionA)

	batch := dto.AreaMapBatchCreateRequest{Areas: []dto.AreaMapCreateRequest{
		linkArea(editionA, page1),
		linkArea(editionA, page2),
	}}
	resp := postJSON(t, app, "/api/areamaps/batch", batch)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 2, areaMapCount(t, db))
}
