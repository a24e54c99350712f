package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/codedevify/Urbansolz/cart"
	checkoutControllers "github.com/codedevify/Urbansolz/controllers/checkout"
	"github.com/codedevify/Urbansolz/events"
	"github.com/codedevify/Urbansolz/mailer"
	"github.com/codedevify/Urbansolz/models"
	"github.com/codedevify/Urbansolz/payment"
	"github.com/codedevify/Urbansolz/repository"
	"github.com/codedevify/Urbansolz/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	ctx := context.Background()

	// Init DB
	db, err := repository.Connect(ctx, envOr("MONGODB_URI", "mongodb://localhost:27017"), envOr("DB_NAME", "urbansolz"))
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}

	orders := repository.NewOrders(db)
	products := repository.NewProducts(db)
	settings := repository.NewSettings(db)
	admins := repository.NewAdmins(db)

	seed(ctx, products, admins)

	// Cart storage: Redis when configured, in-process otherwise
	carts := cart.NewService(cartStore())

	// Mail transport, config cached until the admin changes it
	mailConfig := mailer.NewConfigSource(settings)
	mail := mailer.NewSMTPSender(mailConfig)

	// Hosted checkout keys live in the settings collection so the admin can
	// rotate them without a restart
	stripe := payment.NewStripe(func(ctx context.Context) (payment.StripeCredentials, error) {
		cfg, err := settings.PaymentConfig(ctx)
		if err != nil {
			return payment.StripeCredentials{}, err
		}
		return payment.StripeCredentials{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
		}, nil
	})
	paypal := payment.NewPayPalFromEnv()

	// Order event fan-out: websocket always, Kafka when brokers are set
	var producer *events.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = events.NewProducer(strings.Split(brokers, ","), 256)
		producer.Start(ctx)
	}
	hub := events.NewHub(producer)

	checkout := &checkoutControllers.Controller{
		Orders:     orders,
		Carts:      carts,
		Stripe:     stripe,
		PayPal:     paypal,
		Mail:       mail,
		MailConfig: mailConfig,
		Events:     hub,
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Orders:     orders,
		Products:   products,
		Settings:   settings,
		Admins:     admins,
		Carts:      carts,
		Checkout:   checkout,
		Mail:       mail,
		MailConfig: mailConfig,
		Hub:        hub,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// cartStore picks Redis when REDIS_ADDR is set, so carts survive restarts
// and multiple instances share them. The in-memory store covers local runs.
func cartStore() cart.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, using in-memory cart store")
		return cart.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return cart.NewRedisStore(client)
}

func seed(ctx context.Context, products repository.ProductStore, admins repository.AdminStore) {
	catalog := []models.Product{
		{Name: "Trail Runner", Description: "Lightweight trail running shoe", Price: 59.99, Category: models.CategoryShoe, CreatedAt: time.Now()},
		{Name: "Court Classic", Description: "Everyday leather sneaker", Price: 74.50, Category: models.CategoryShoe, CreatedAt: time.Now()},
		{Name: "City Loafer", Description: "Slip-on loafer for the office", Price: 89.00, Category: models.CategoryShoe, CreatedAt: time.Now()},
		{Name: "Wool Beanie", Description: "Ribbed merino beanie", Price: 19.99, Category: models.CategoryHat, CreatedAt: time.Now()},
		{Name: "Canvas Cap", Description: "Six-panel canvas cap", Price: 24.00, Category: models.CategoryHat, CreatedAt: time.Now()},
	}
	if err := products.Seed(ctx, catalog); err != nil {
		log.Printf("⚠️ Product seed failed: %v", err)
	}

	admin := models.Admin{
		Username: envOr("ADMIN_USERNAME", "admin"),
		Password: envOr("ADMIN_PASSWORD", "admin"),
	}
	if err := admins.Seed(ctx, admin); err != nil {
		log.Printf("⚠️ Admin seed failed: %v", err)
	}
}
