// internals/features/epapers/editions/service/pages.go
package service

import (
	accessService "koranku_backend/internals/features/epapers/access/service"
	model "koranku_backend/internals/features/epapers/editions/model"
)

// VisiblePages applies an access allowance to an ordered page list:
// the first allowed pages survive, the rest are omitted entirely.
// PagesUnlimited, or an allowance at or beyond the total, returns the
// list unchanged; zero returns an empty (non-nil) slice.
func VisiblePages(pages []model.EditionPageModel, allowed int) []model.EditionPageModel {
	if allowed == accessService.PagesUnlimited || allowed >= len(pages) {
		return pages
	}
	if allowed <= 0 {
		return pages[:0]
	}
	return pages[:allowed]
}
