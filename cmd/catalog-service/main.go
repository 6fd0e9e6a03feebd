package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labelgrid/labelgrid/internal/config"
	httpAPI "github.com/labelgrid/labelgrid/internal/http"
	"github.com/labelgrid/labelgrid/internal/http/controller"
	"github.com/labelgrid/labelgrid/internal/logger"
	"github.com/labelgrid/labelgrid/internal/metrics"
	reposql "github.com/labelgrid/labelgrid/internal/repository/sql"
	"github.com/labelgrid/labelgrid/internal/service"
	sqspkg "github.com/labelgrid/labelgrid/internal/sqs"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := reposql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Create repositories
	ownerRepository := reposql.NewOwnerRepository(db)
	productRepository := reposql.NewProductRepository(db)
	templateRepository := reposql.NewTemplateRepository(db)
	eventRepository := reposql.NewEventRepository(db)
	transactionalRepository := reposql.NewTransactionalRepository(db)

	// SQS client feeding the outbox worker
	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	// Create services
	ownerService := service.NewOwnerService(ownerRepository)
	productService := service.NewProductService(productRepository, transactionalRepository)
	templateService := service.NewTemplateService(templateRepository)
	importService := service.NewImportService(productService)
	designService := service.NewDesignService(productService, templateService, eventRepository)

	// Start outbox worker to publish pending events every 2 seconds
	outboxWorker := service.NewOutboxWorker(eventRepository, eventRepository.(*reposql.EventRepository), sqsPublisher, 2*time.Second)
	go outboxWorker.Start(ctx)

	// Start HTTP server
	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(httpServer, httpAPI.Controllers{
		Base:     controller.New(conf, productRepository),
		Owner:    controller.NewOwnerController(ownerService),
		Product:  controller.NewProductController(productService),
		Template: controller.NewTemplateController(templateService),
		Import:   controller.NewImportController(importService),
		Label:    controller.NewLabelController(designService),
	})

	go func() {
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	outboxWorker.Stop()
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
