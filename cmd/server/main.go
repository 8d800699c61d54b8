// Package main is the entry point for the payment-proof relay service.
// It loads configuration once, wires the relay clients into the submission
// handler and starts the HTTP server.
package main

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"vipmail/internal/config"
	"vipmail/internal/handlers"
	"vipmail/internal/logging"
	"vipmail/internal/services/captcha"
	"vipmail/internal/services/notify"
	"vipmail/internal/services/screenshot"
	"vipmail/internal/utils/response"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger := logging.New(cfg.IsProduction())
	defer logger.Sync()

	verifier := captcha.NewService(cfg.HCaptchaSecret, cfg.HCaptchaVerifyURL, logger)

	notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if err != nil {
		logger.Fatalf("telegram bot: %v", err)
	}

	// Retention policy only when an upload dir is configured; otherwise
	// failed relays discard the bytes with the request.
	var store *screenshot.Store
	if cfg.UploadDir != "" {
		store = screenshot.NewStore(cfg.UploadDir, cfg.MaxRetained, logger)
	}

	app := fiber.New(fiber.Config{
		// Room for the form fields around a max-size screenshot, so an
		// oversized upload reaches the handler and gets the specific message.
		BodyLimit: int(cfg.MaxFileSize) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).JSON(response.Payload{Success: false, Message: fe.Message})
			}
			logger.Errorw("unhandled error", "path", c.Path(), "error", err)
			return response.Fail(c, "An unexpected error occurred. Please try again later.")
		},
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Use(fiberlog.New(fiberlog.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/v1/payments", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Fail(c, "Too many requests. Please try again later.")
		},
	}))

	paymentHandler := handlers.NewPaymentHandler(cfg, verifier, notifier, store, logger)
	handlers.SetupRoutes(app, paymentHandler)

	app.Static("/", "./web/static")

	logger.Infof("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
