// internals/features/epapers/editions/route/edition_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	editionController "koranku_backend/internals/features/epapers/editions/controller"
	editionService "koranku_backend/internals/features/epapers/editions/service"
	middlewares "koranku_backend/internals/middlewares"
	authMiddleware "koranku_backend/internals/middlewares/auth"
)

// EditionPublicRoutes: listing and detail. Detail carries optional auth
// so the access evaluator can see who is asking.
func EditionPublicRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ctrl := editionController.NewEditionController(db, store)

	epapers := api.Group("/epapers")
	epapers.Get("/", ctrl.List)
	epapers.Get("/:id", authMiddleware.AuthOptional(), ctrl.GetByID)
}

// EditionPublisherRoutes: upload, metadata write, publish, delete.
func EditionPublisherRoutes(api fiber.Router, db *gorm.DB, store *editionService.ArtifactStore) {
	ctrl := editionController.NewEditionController(db, store)

	epapers := api.Group("/epapers")
	epapers.Post("/", middlewares.UploadRateLimiter(), ctrl.Create)
	epapers.Put("/:id", ctrl.Update)
	epapers.Post("/:id/publish", ctrl.Publish)
	epapers.Delete("/:id", ctrl.Delete)
}
