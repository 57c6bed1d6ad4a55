package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cotacao_service/internal/adapter/http/handlers"
	"cotacao_service/internal/adapter/importer"
	"cotacao_service/internal/adapter/persistence/repository"
	"cotacao_service/internal/infrastructure/config"
	"cotacao_service/internal/infrastructure/database"
	"cotacao_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

type handlerSet struct {
	quotation *handlers.QuotationHandler
	workflow  *handlers.WorkflowHandler
	saving    *handlers.SavingHandler
}

// Run wires the service and serves HTTP until SIGINT or SIGTERM.
func Run(cfg config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := newRouter(buildHandlers(cfg, logger), logger)
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("[http][server] listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("[http][server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildHandlers(cfg config.Config, logger *logrus.Logger) handlerSet {
	ddb := database.ConnectDynamoDB(cfg, logger)

	quotationRepo := repository.NewQuotationDynamoRepository(ddb, cfg.QuotationsTable)
	savingRepo := repository.NewSavingDynamoRepository(ddb, cfg.QuotationsTable, cfg.SavingsTable, cfg.SavingItemsTable)

	resolver := usecase.NewHistoricalPriceResolver(savingRepo, logger)
	quotationUseCase := usecase.NewQuotationUseCase(quotationRepo, resolver, logger)
	workflowUseCase := usecase.NewWorkflowUseCase(quotationRepo, savingRepo, logger)
	savingUseCase := usecase.NewSavingUseCase(savingRepo, resolver)

	return handlerSet{
		quotation: handlers.NewQuotationHandler(quotationUseCase, importer.NewXLSXRowReader(), logger),
		workflow:  handlers.NewWorkflowHandler(workflowUseCase, logger),
		saving:    handlers.NewSavingHandler(savingUseCase, logger),
	}
}

// newRouter builds the gin engine. Everything under /v1 except ping requires
// the gateway user headers.
func newRouter(h handlerSet, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authenticated := v1.Group("", handlers.RequireActor())
	addQuotationRoutes(authenticated, h.quotation, h.workflow)
	addSavingRoutes(authenticated, h.saving)

	return router
}

func setMiddlewares(router *gin.Engine, logger *logrus.Logger) {
	router.Use(requestLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"path":      c.Request.URL.Path,
			"recovered": recovered,
		}).Error("[http][recovery] panic")
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("[http][request] served")
	}
}
