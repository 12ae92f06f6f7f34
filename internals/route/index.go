// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"koranku_backend/internals/constants"
	editionService "koranku_backend/internals/features/epapers/editions/service"
	authMiddleware "koranku_backend/internals/middlewares/auth"
	routeDetails "koranku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store *editionService.ArtifactStore) {
	// ===================== GROUPS =====================

	// PUBLIC → no token; the detail route attaches its own optional auth
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")

	// USER → valid token, any role
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api", authMiddleware.AuthRequired())

	// PUBLISHER → valid token + publisher or admin role
	log.Println("[INFO] Setting up PUBLISHER group...")
	publisher := app.Group("/api",
		authMiddleware.AuthRequired(),
		authMiddleware.OnlyRolesSlice(constants.RoleErrorPublisher("e-paper management"), constants.PublisherAndAbove),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting E-paper routes...")
	routeDetails.EpaperPublicRoutes(public, db, store)
	routeDetails.EpaperPublisherRoutes(publisher, db, store)

	log.Println("[INFO] Mounting Area-map routes...")
	routeDetails.AreaMapUserRoutes(user, db)
	routeDetails.AreaMapPublisherRoutes(publisher, db)
}
