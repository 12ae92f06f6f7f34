package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	model "koranku_backend/internals/features/epapers/areamaps/model"
	service "koranku_backend/internals/features/epapers/areamaps/service"
)

func validCreateRequest(areaType string) AreaMapCreateRequest {
	return AreaMapCreateRequest{
		EditionID:   uuid.New(),
		PageID:      uuid.New(),
		AreaType:    areaType,
		Coordinates: []service.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 10}},
	}
}

func TestValidateKindTarget(t *testing.T) {
	url := "https://example.com"
	pageNo := 4
	zero := 0
	adID := uuid.New()

	t.Run("link requires url", func(t *testing.T) {
		req := validCreateRequest(model.AreaTypeLink)
		assert.Error(t, req.ValidateKindTarget())

		req.LinkURL = &url
		assert.NoError(t, req.ValidateKindTarget())
	})

	t.Run("page_nav requires positive page number", func(t *testing.T) {
		req := validCreateRequest(model.AreaTypePageNav)
		assert.Error(t, req.ValidateKindTarget())

		req.LinkPageNumber = &zero
		assert.Error(t, req.ValidateKindTarget())

		req.LinkPageNumber = &pageNo
		assert.NoError(t, req.ValidateKindTarget())
	})

	t.Run("ad requires ad id", func(t *testing.T) {
		req := validCreateRequest(model.AreaTypeAd)
		assert.Error(t, req.ValidateKindTarget())

		req.AdID = &adID
		assert.NoError(t, req.ValidateKindTarget())
	})

	t.Run("unneeded targets are not rejected", func(t *testing.T) {
		// A link area carrying a stray page number is still a link area.
		req := validCreateRequest(model.AreaTypeLink)
		req.LinkURL = &url
		req.LinkPageNumber = &pageNo
		assert.NoError(t, req.ValidateKindTarget())
	})
}

func TestNormalize(t *testing.T) {
	url := "  https://example.com  "
	blank := "   "

	req := validCreateRequest(" LINK ")
	req.LinkURL = &url
	req.TooltipText = &blank
	req.Normalize()

	assert.Equal(t, "link", req.AreaType)
	require.NotNil(t, req.LinkURL)
	assert.Equal(t, "https://example.com", *req.LinkURL)
	assert.Nil(t, req.TooltipText, "blank tooltip collapses to null")
}

func TestToModel(t *testing.T) {
	url := "https://example.com"
	req := validCreateRequest(model.AreaTypeLink)
	req.LinkURL = &url

	m, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, req.EditionID, m.AreaMapEditionID)
	assert.Equal(t, req.PageID, m.AreaMapPageID)
	assert.True(t, m.AreaMapIsActive, "new areas start active")

	pts, err := DecodeCoordinates(m.AreaMapCoordinates)
	require.NoError(t, err)
	assert.Equal(t, req.Coordinates, pts)
}

func TestUpdateToUpdates(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		updates, err := (&AreaMapUpdateRequest{}).ToUpdates()
		require.NoError(t, err)
		assert.Empty(t, updates)
	})

	t.Run("partial", func(t *testing.T) {
		active := false
		req := AreaMapUpdateRequest{
			Coordinates: []service.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}},
			IsActive:    &active,
		}
		updates, err := req.ToUpdates()
		require.NoError(t, err)
		assert.Len(t, updates, 2)
		assert.Equal(t, false, updates["area_map_is_active"])
		assert.Contains(t, updates, "area_map_coordinates")
		assert.NotContains(t, updates, "area_map_type")
	})
}

func TestDecodeCoordinatesRejectsGarbage(t *testing.T) {
	_, err := DecodeCoordinates(datatypes.JSON(`{"x":1}`))
	assert.Error(t, err)

	_, err = DecodeCoordinates(datatypes.JSON(`not json`))
	assert.Error(t, err)
}
