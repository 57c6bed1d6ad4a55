package main

import (
	"log"

	_ "cotacao_service/docs"
	"cotacao_service/internal/adapter/http/routes"
	"cotacao_service/internal/infrastructure/config"
	"cotacao_service/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cotação Service API
// @version         1.0
// @description     Procurement quotations: product consolidation, supplier offer comparison, approval workflow and saving records, backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description User id forwarded by the auth gateway, together with X-User-Name and X-User-Role.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	if err := routes.Run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("[http][server] stopped")
	}
}
