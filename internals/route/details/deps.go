package details

import (
	"time"

	"gorm.io/gorm"

	ppdbService "sekolahku_backend/internals/features/public_pages/ppdb/service"
	"sekolahku_backend/internals/helpers/cache"
	"sekolahku_backend/internals/helpers/mailer"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

// Deps: dependency bersama yang dibagikan ke semua route group.
// Storage/Gateway boleh nil (fitur upload/pembayaran balas 503).
type Deps struct {
	DB       *gorm.DB
	Storage  helperOSS.Storage
	Cache    *cache.Cache
	CacheTTL time.Duration
	Mailer   mailer.Mailer
	Gateway  ppdbService.Gateway
}
