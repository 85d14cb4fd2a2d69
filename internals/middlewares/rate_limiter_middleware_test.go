package middlewares

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Semua request app.Test datang dari 0.0.0.0.
func TestContactRateLimiterForwardedFor(t *testing.T) {
	tests := []struct {
		name     string
		trusted  string
		accepted int
	}{
		{"default ignores spoofed header", "", 3},
		{"untrusted cidr ignores header", "10.0.0.0/8", 3},
		{"trusted proxy keys by forwarded ip", "0.0.0.0", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRUSTED_PROXIES", tt.trusted)
			app := fiber.New(AppConfig())
			app.Post("/contact", ContactRateLimiter(), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusCreated)
			})

			accepted := 0
			for i := 0; i < 10; i++ {
				req := httptest.NewRequest("POST", "/contact", nil)
				req.Header.Set(fiber.HeaderXForwardedFor, fmt.Sprintf("203.0.113.%d", i+1))
				resp, err := app.Test(req)
				require.NoError(t, err)
				switch resp.StatusCode {
				case fiber.StatusCreated:
					accepted++
				default:
					assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
				}
			}
			assert.Equal(t, tt.accepted, accepted)
		})
	}
}

func TestAppConfigTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.Equal(t, []string{"127.0.0.1", "::1"}, AppConfig().TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "173.245.48.0/20, 103.21.244.0/22")
	cfg := AppConfig()
	assert.True(t, cfg.EnableTrustedProxyCheck)
	assert.Equal(t, []string{"173.245.48.0/20", "103.21.244.0/22"}, cfg.TrustedProxies)
}
