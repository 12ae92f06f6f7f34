package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accessService "koranku_backend/internals/features/epapers/access/service"
	model "koranku_backend/internals/features/epapers/editions/model"
)

func makePages(n int) []model.EditionPageModel {
	pages := make([]model.EditionPageModel, n)
	for i := range pages {
		pages[i].EditionPageNumber = i + 1
	}
	return pages
}

func TestVisiblePages(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		allowed int
		want    int
	}{
		{"unlimited returns all", 10, accessService.PagesUnlimited, 10},
		{"zero hides everything", 10, 0, 0},
		{"preview cut of a long edition", 10, accessService.FreePreviewPages, 3},
		{"allowance equals total", 5, 5, 5},
		{"allowance beyond total returns all", 2, accessService.FreePreviewPages, 2},
		{"empty edition", 0, accessService.FreePreviewPages, 0},
		{"empty edition, unlimited", 0, accessService.PagesUnlimited, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisiblePages(makePages(tt.total), tt.allowed)
			require.Len(t, got, tt.want)

			// Always the leading prefix, in order, never a reshuffle.
			for i, p := range got {
				assert.Equal(t, i+1, p.EditionPageNumber)
			}
		})
	}
}

func TestVisiblePagesKeepsPrefixIdentity(t *testing.T) {
	pages := makePages(4)
	got := VisiblePages(pages, 2)
	require.Len(t, got, 2)
	assert.Equal(t, pages[0], got[0])
	assert.Equal(t, pages[1], got[1])
}
