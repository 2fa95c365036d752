package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clouddevops/devopsapp/internal/api"
	"github.com/clouddevops/devopsapp/internal/awsutil"
	"github.com/clouddevops/devopsapp/internal/config"
	"github.com/clouddevops/devopsapp/internal/notify"
	"github.com/clouddevops/devopsapp/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	awsCfg, err := awsutil.LoadConfig(ctx, awsutil.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}

	store := storage.NewMessageStore(awsCfg, cfg.TableName)
	log.Printf("devopsapp: DynamoDB message store configured (table=%s, region=%s)", cfg.TableName, cfg.Region)

	opts := &api.ServerOpts{APIKey: cfg.APIKey}

	// Notifications are optional
	if cfg.SNSTopicARN != "" {
		opts.Notifier = notify.NewPublisher(awsCfg, cfg.SNSTopicARN)
		log.Printf("devopsapp: SNS notifications configured (topic=%s)", cfg.SNSTopicARN)
	} else {
		log.Println("devopsapp: no SNS_TOPIC_ARN configured, running without notifications")
	}

	if cfg.APIKey == "" {
		log.Println("devopsapp: no API key configured, /api is unauthenticated")
	}

	server := api.NewServer(store, opts)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("devopsapp: starting server on %s", addr)

	go func() {
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("devopsapp: shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error shutting down server: %v", err)
	}
}
