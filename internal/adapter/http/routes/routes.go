package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	_ "loja_checkout/docs" // This will be auto-generated
	"loja_checkout/internal/adapter/http/handlers"
	"loja_checkout/internal/adapter/persistence/repository"
	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/infrastructure/database"
	"loja_checkout/internal/infrastructure/idempotency"
	"loja_checkout/internal/infrastructure/notify"
	"loja_checkout/internal/infrastructure/payments"
	"loja_checkout/internal/usecase"
	"loja_checkout/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	orderRepo := repository.NewOrderDynamoRepository(ddb)
	productRepo := repository.NewProductDynamoRepository(ddb)

	// One registry for the whole process: the at-most-one-order guarantee
	// must hold across every concurrent checkout flow, not per handler.
	registry := idempotency.NewRegistry()
	notifier := buildNotifier()
	settings := settingsFromEnv()

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	orderUseCase := usecase.NewOrderUseCase(orderRepo, registry, notifier, idempotency.DefaultReleaseGrace)
	cardProcessor := usecase.NewCardPaymentProcessor(paymentGateway)
	productUseCase := usecase.NewProductUseCase(productRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(productRepo, paymentGateway, cardProcessor, orderUseCase, notifier, settings, nil)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	orderHandler := handlers.NewOrderHandler(orderUseCase)
	productHandler := handlers.NewProductHandler(productUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCheckoutRoutes(v1, checkoutHandler)
	addOrderRoutes(v1, orderHandler)
	addProductRoutes(v1, productHandler)
}

func buildNotifier() interfaces.INotifier {
	topicARN := strings.TrimSpace(os.Getenv("CHECKOUT_SNS_TOPIC_ARN"))
	if topicARN == "" {
		log.Printf("[notify] no SNS topic configured, using log notifier")
		return notify.NewLogNotifier()
	}
	cfg, err := database.NewAWSConfigFromEnv(context.Background())
	if err != nil {
		log.Printf("[notify] failed loading aws config, using log notifier: %v", err)
		return notify.NewLogNotifier()
	}
	return notify.NewSNSNotifier(cfg, topicARN)
}

func settingsFromEnv() entities.CheckoutSettings {
	return entities.CheckoutSettings{
		CardEnabled:          getenvBool("CHECKOUT_CARD_ENABLED", true),
		ManualCardProcessing: getenvBool("CHECKOUT_MANUAL_CARD_PROCESSING", false),
		ManualCardStatus:     getenvDefault("CHECKOUT_MANUAL_CARD_STATUS", "ANALYSIS"),
		PixEnabled:           getenvBool("CHECKOUT_PIX_ENABLED", true),
		PixExpirationMinutes: getenvInt("CHECKOUT_PIX_EXPIRATION_MINUTES", 30),
		SandboxMode:          strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
