// internals/features/epapers/areamaps/route/area_map_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	areaMapController "koranku_backend/internals/features/epapers/areamaps/controller"
)

// AreaMapUserRoutes: reads and hit testing for authenticated readers.
func AreaMapUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := areaMapController.NewAreaMapController(db)

	areamaps := api.Group("/areamaps")
	areamaps.Get("/e-paper/:e_paper_id", ctrl.GetByEdition)
	areamaps.Get("/page/:page_id", ctrl.GetByPage)
	areamaps.Get("/stats/:e_paper_id", ctrl.Stats)
	areamaps.Post("/test-point/:page_id", ctrl.TestPoint)
}

// AreaMapPublisherRoutes: hotspot authoring.
func AreaMapPublisherRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := areaMapController.NewAreaMapController(db)

	areamaps := api.Group("/areamaps")
	areamaps.Post("/", ctrl.Create)
	areamaps.Post("/batch", ctrl.BatchCreate)
	areamaps.Put("/:id", ctrl.Update)
	areamaps.Delete("/:id", ctrl.Delete)
}
