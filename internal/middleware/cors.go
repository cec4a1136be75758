package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Cors restricts the API to the clan site origins. Local development gets
// localhost when env is "dev".
func Cors(env, allowOrigins string) fiber.Handler {
	if env == "dev" {
		allowOrigins = "http://localhost:3000"
	}
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type",
		AllowMethods: "GET, OPTIONS",
	})
}
