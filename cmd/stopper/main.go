package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/clouddevops/devopsapp/internal/awsutil"
	"github.com/clouddevops/devopsapp/internal/compute"
	"github.com/clouddevops/devopsapp/internal/config"
	"github.com/clouddevops/devopsapp/internal/stopper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	awsCfg, err := awsutil.LoadConfig(context.Background(), awsutil.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}

	h := stopper.New(stopper.Config{InstanceID: cfg.InstanceID}, compute.NewEC2Stopper(awsCfg))
	lambda.Start(h.Handle)
}
