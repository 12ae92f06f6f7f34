package details

import (
	AreaMapRoutes "koranku_backend/internals/features/epapers/areamaps/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Area-map reads and hit testing (token required).
func AreaMapUserRoutes(api fiber.Router, db *gorm.DB) {
	AreaMapRoutes.AreaMapUserRoutes(api, db)
}

// Area-map authoring (token + publisher/admin role).
func AreaMapPublisherRoutes(api fiber.Router, db *gorm.DB) {
	AreaMapRoutes.AreaMapPublisherRoutes(api, db)
}
