package details

import (
	EditionRoutes "koranku_backend/internals/features/epapers/editions/route"
	ShareRoutes "koranku_backend/internals/features/epapers/shares/route"

	editionService "koranku_backend/internals/features/epapers/editions/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Public e-paper reads. Share lookup registers before the detail route
// so /epapers/share/:token never collides with /epapers/:id.
func EpaperPublicRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ShareRoutes.SharePublicRoutes(api, db, store)
	EditionRoutes.EditionPublicRoutes(api, db, store)
}

// Publisher e-paper writes (token + publisher/admin role).
func EpaperPublisherRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ShareRoutes.SharePublisherRoutes(api, db, store)
	EditionRoutes.EditionPublisherRoutes(api, db, store)
}
