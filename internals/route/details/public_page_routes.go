package details

import (
	"github.com/gofiber/fiber/v2"

	contactRoute "sekolahku_backend/internals/features/public_pages/contacts/route"
	downloadRoute "sekolahku_backend/internals/features/public_pages/downloads/route"
	galleryRoute "sekolahku_backend/internals/features/public_pages/galleries/route"
	newsRoute "sekolahku_backend/internals/features/public_pages/news/route"
	ppdbRoute "sekolahku_backend/internals/features/public_pages/ppdb/route"
	rateLimiter "sekolahku_backend/internals/middlewares"
)

/* ===================== WEBHOOK ===================== */
// Harus dipasang sebelum group /api/public/:instansi_slug.
func PublicPageWebhookRoutes(api fiber.Router, d Deps) {
	ppdbRoute.PPDBWebhookRoutes(api, d.DB, d.Gateway)
}

/* ===================== PUBLIC ===================== */
func PublicPagePublicRoutes(r fiber.Router, d Deps) {
	newsRoute.NewsPublicRoutes(r, d.DB, d.Cache, d.CacheTTL)
	galleryRoute.GalleryPublicRoutes(r, d.DB, d.Cache, d.CacheTTL)
	downloadRoute.DownloadPublicRoutes(r, d.DB, d.Cache, d.CacheTTL)
	contactRoute.ContactPublicRoutes(r, d.DB, d.Mailer, rateLimiter.ContactRateLimiter())
	ppdbRoute.PPDBPublicRoutes(r, d.DB, d.Mailer, d.Gateway, rateLimiter.PPDBRateLimiter())
}

/* ===================== ADMIN ===================== */
func PublicPageAdminRoutes(r fiber.Router, d Deps) {
	newsRoute.NewsAdminRoutes(r, d.DB, d.Storage, d.Cache)
	galleryRoute.GalleryAdminRoutes(r, d.DB, d.Storage, d.Cache)
	downloadRoute.DownloadAdminRoutes(r, d.DB, d.Storage, d.Cache)
	contactRoute.ContactAdminRoutes(r, d.DB, d.Mailer)
	ppdbRoute.PPDBAdminRoutes(r, d.DB, d.Mailer, d.Gateway)
}
