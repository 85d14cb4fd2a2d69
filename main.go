package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	ppdbService "sekolahku_backend/internals/features/public_pages/ppdb/service"
	scheduler "sekolahku_backend/internals/features/users/auth/scheduler"
	"sekolahku_backend/internals/helpers/cache"
	"sekolahku_backend/internals/helpers/mailer"
	helperOSS "sekolahku_backend/internals/helpers/oss"
	middlewares "sekolahku_backend/internals/middlewares"
	routes "sekolahku_backend/internals/route"
	routeDetails "sekolahku_backend/internals/route/details"
	"sekolahku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	configs.InitRollbar()
	defer configs.CloseRollbar()

	app := fiber.New(middlewares.AppConfig())

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if err := database.AutoMigrate(database.DB); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	if configs.GetEnvBool("DB_SEED", false) {
		seeds.RunAllSeeds(database.DB)
	}
	database.WarmUpQueries()
	database.ConnectRedis()

	// OSS opsional: tanpa env, endpoint upload balas 503
	var storage helperOSS.Storage
	ossSvc, err := helperOSS.NewOSSServiceFromEnv(configs.GetEnv("ALI_OSS_PREFIX", "sekolahku"))
	if err != nil {
		log.Printf("⚠️ OSS nonaktif: %v", err)
	} else {
		storage = ossSvc
	}

	var gateway ppdbService.Gateway
	if gw := ppdbService.NewMidtransGatewayFromEnv(); gw != nil {
		gateway = gw
	}

	// ⏱ scheduler setelah DB siap
	jobs := []*cron.Cron{
		scheduler.StartBlacklistCleanupScheduler(database.DB),
		helperOSS.StartTrashReaperCron(ossSvc, database.DB),
		ppdbService.StartPaymentExpiryCron(database.DB),
	}

	routes.SetupRoutes(app, routeDetails.Deps{
		DB:       database.DB,
		Storage:  storage,
		Cache:    cache.New(database.Redis, "sekolahku"),
		CacheTTL: configs.GetEnvDuration("CACHE_TTL", 5*time.Minute),
		Mailer:   mailer.NewFromEnv(),
		Gateway:  gateway,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop cron, server, lalu pool DB/redis
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	for _, j := range jobs {
		if j != nil {
			<-j.Stop().Done()
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.CloseRedis()
	database.Close()
	log.Println("👋 Server berhenti")
}
