// internals/features/epapers/shares/route/share_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	editionService "koranku_backend/internals/features/epapers/editions/service"
	shareController "koranku_backend/internals/features/epapers/shares/controller"
)

// SharePublicRoutes: token lookup only. No listing, no enumeration.
func SharePublicRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ctrl := shareController.NewCroppedShareController(db, store)

	api.Get("/epapers/share/:token", ctrl.GetByToken)
}

// SharePublisherRoutes: crop creation.
func SharePublisherRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ctrl := shareController.NewCroppedShareController(db, store)

	api.Post("/epapers/crop-share", ctrl.Create)
}
