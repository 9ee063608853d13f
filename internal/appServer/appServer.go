// launching the server, storage, kafka, redis
package appServer

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/render"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/stats"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
	"github.com/ds124wfegd/WB_L3/6/internal/service"
	"github.com/ds124wfegd/WB_L3/6/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath)
	jobRepo := database.NewJobRepository(fileStorage)
	packRepo := database.NewPackRepository(fileStorage)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})
	counter := stats.NewCounter(redisClient)

	fontCache := render.NewFontCache()
	resolver := render.NewResolver(render.FontSources{
		Paths:      cfg.Fonts.Paths,
		URL:        cfg.Fonts.URL,
		DownloadTo: cfg.Fonts.DownloadTo,
	}, fontCache)
	engine := render.NewEngine(resolver, render.Options{
		MaxSize:         cfg.Render.MaxSize,
		MemeFontSize:    cfg.Render.MemeFontSize,
		QuoteFontSize:   cfg.Render.QuoteFontSize,
		QuoteAuthorSize: cfg.Render.QuoteAuthorFontSize,
		QuoteMarkSize:   cfg.Render.QuoteMarkFontSize,
	})

	renderWorker := processor.NewRenderWorker(jobRepo, engine, counter)

	// Без брокера задачи рендерятся локальным воркером
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, func(message []byte) {
		var task entity.RenderTask
		if err := json.Unmarshal(message, &task); err != nil {
			logrus.Errorf("Failed to parse task: %v", err)
			return
		}
		go func() {
			if err := renderWorker.Process(task); err != nil {
				logrus.Errorf("Rendering failed for %s: %v", task.JobID, err)
			}
		}()
	})

	stickerService := service.NewStickerService(jobRepo, packRepo, producer, counter)
	stickerHandler := transport.NewStickerHandler(stickerService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(stickerHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

	closeClients(producer, redisClient)

}

// closeClients освобождает внешние соединения при остановке приложения
func closeClients(producer kafka.Producer, redisClient *redis.Client) {
	if err := producer.Close(); err != nil {
		logrus.Errorf("error occured on kafka producer close: %s", err.Error())
	}

	if err := redisClient.Close(); err != nil {
		logrus.Errorf("error occured on redis client close: %s", err.Error())
	}
}
