package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/render"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/stats"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath)
	jobRepo := database.NewJobRepository(fileStorage)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	counter := stats.NewCounter(redisClient)

	resolver := render.NewResolver(render.FontSources{
		Paths:      cfg.Fonts.Paths,
		URL:        cfg.Fonts.URL,
		DownloadTo: cfg.Fonts.DownloadTo,
	}, render.NewFontCache())
	engine := render.NewEngine(resolver, render.Options{
		MaxSize:         cfg.Render.MaxSize,
		MemeFontSize:    cfg.Render.MemeFontSize,
		QuoteFontSize:   cfg.Render.QuoteFontSize,
		QuoteAuthorSize: cfg.Render.QuoteAuthorFontSize,
		QuoteMarkSize:   cfg.Render.QuoteMarkFontSize,
	})

	worker := processor.NewRenderWorker(jobRepo, engine, counter)

	processor.StartRenderConsumer(
		[]string{config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers)},
		config.GetEnv("KAFKA_TOPIC", cfg.Kafka.Topic),
		config.GetEnv("KAFKA_GROUP_ID", cfg.Kafka.GroupID),
		worker,
	)
}
