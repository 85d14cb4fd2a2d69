package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
	instansiService "sekolahku_backend/internals/features/instansi/service"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	featuresMiddleware "sekolahku_backend/internals/middlewares/features"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, d routeDetails.Deps) {
	startTime = time.Now()
	BaseRoutes(app)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    helperAuth.BlacklistChecker(d.DB, configs.JWTSecret),
		AllowCookieFallback: true,
	})

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, d, jwt)

	// ===================== WEBHOOK (tanpa slug) =====================
	log.Println("[INFO] Setting up payment webhook...")
	routeDetails.PublicPageWebhookRoutes(app.Group("/api"), d)

	// ===================== PUBLIC (per instansi) =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public/:instansi_slug", instansiService.ResolvePublicInstansi(d.DB))

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", jwt, featuresMiddleware.UseInstansiScope())

	// ===================== ADMIN (per instansi) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + Scope + RoleCheck)...")
	admin := app.Group("/api/a",
		jwt,
		featuresMiddleware.UseInstansiScope(),
		featuresMiddleware.IsInstansiStaff(),
	)

	// ===================== OWNER (GLOBAL) =====================
	log.Println("[INFO] Setting up OWNER group (Auth + owner global)...")
	owner := app.Group("/api/o", jwt, featuresMiddleware.IsOwnerGlobal())

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Instansi routes...")
	routeDetails.InstansiPublicRoutes(public, d)
	routeDetails.InstansiAdminRoutes(admin, d)
	routeDetails.InstansiOwnerRoutes(owner, d)

	log.Println("[INFO] Mounting E-learning & Library routes...")
	routeDetails.ElearningUserRoutes(user, d)
	routeDetails.ElearningAdminRoutes(admin, d)

	log.Println("[INFO] Mounting Public Page routes...")
	routeDetails.PublicPagePublicRoutes(public, d)
	routeDetails.PublicPageAdminRoutes(admin, d)
}
