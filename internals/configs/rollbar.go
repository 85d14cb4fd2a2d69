package configs

import (
	"log"

	"github.com/rollbar/rollbar-go"
)

// InitRollbar: tanpa ROLLBAR_TOKEN pelaporan dimatikan.
func InitRollbar() {
	token := GetEnv("ROLLBAR_TOKEN")
	rollbar.SetToken(token)
	rollbar.SetEnvironment(GetEnv("APP_ENV", "development"))
	rollbar.SetCodeVersion(GetEnv("APP_BUILD", "dev"))
	rollbar.SetServerRoot("sekolahku_backend")
	rollbar.SetEnabled(token != "")
	if token == "" {
		log.Println("ℹ️ ROLLBAR_TOKEN kosong, error reporting nonaktif")
	}
}

func CloseRollbar() {
	rollbar.Close()
}
