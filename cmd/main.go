package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"

	"bijoux-catalog/internal/logger"
	"bijoux-catalog/internal/models"
	"bijoux-catalog/internal/server"
	"bijoux-catalog/internal/storage"
	"bijoux-catalog/internal/upload"
)

func main() {
	cfg, err := models.LoadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.FromConfig(cfg.LogLevel, cfg.LogFilePath, cfg.Production())

	db, err := storage.NewStorage(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to init storage", err)
	}
	defer db.Close()

	uploads, err := upload.NewService(cfg, log)
	if err != nil {
		log.Fatal("failed to init upload service", err)
	}

	producer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
	})

	// Thumbnail consumer in background
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		consumer := kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{cfg.KafkaBroker},
			Topic:   cfg.KafkaTopic,
			GroupID: "menu-thumbnail-group",
		})
		defer consumer.Close()

		tlog := log.WithContext("thumbnails")
		for {
			msg, err := consumer.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				tlog.Error("error reading message", err)
				continue
			}
			if err := server.ProcessThumbnail(string(msg.Value), cfg); err != nil {
				tlog.Error("error generating thumbnail", err)
			}
		}
	}()

	srv := server.NewServer(cfg, db, uploads, producer, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("failed to start server", err)
		}
	}()
	log.Info("listening on " + cfg.ServerAddr)

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	srv.Stop()
	producer.Close()
}
