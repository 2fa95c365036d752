package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Config holds all configuration for the stopper function, the message
// backend and the CLI.
type Config struct {
	// Stopper target
	InstanceID string // EC2 instance stopped on each invocation

	// AWS
	Region          string
	AccessKeyID     string // empty = default credential chain
	SecretAccessKey string
	Endpoint        string // override for LocalStack-style endpoints

	// Message backend
	Port        int
	APIKey      string // empty disables auth
	TableName   string
	SNSTopicARN string // empty disables notifications

	// AWS Secrets Manager: if set, secrets are fetched at startup and
	// applied to unset environment variables before the rest of Load runs.
	SecretsARN string
}

// Load reads configuration from environment variables with sensible defaults.
// A missing INSTANCE_ID is not an error here; the stopper reports it when invoked.
func Load() (*Config, error) {
	if arn := os.Getenv("DEVOPSAPP_SECRETS_ARN"); arn != "" {
		if err := loadSecretsManager(arn); err != nil {
			return nil, fmt.Errorf("failed to load secrets from %s: %w", arn, err)
		}
	}

	cfg := &Config{
		InstanceID: strings.TrimSpace(os.Getenv("INSTANCE_ID")),

		Region:          envOrDefault("AWS_REGION", "us-east-1"),
		AccessKeyID:     os.Getenv("DEVOPSAPP_AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("DEVOPSAPP_AWS_SECRET_ACCESS_KEY"),
		Endpoint:        os.Getenv("DEVOPSAPP_AWS_ENDPOINT"),

		Port:        5000,
		APIKey:      os.Getenv("DEVOPSAPP_API_KEY"),
		TableName:   envOrDefault("DEVOPSAPP_TABLE_NAME", "DevOpsMessages"),
		SNSTopicARN: os.Getenv("SNS_TOPIC_ARN"),

		SecretsARN: os.Getenv("DEVOPSAPP_SECRETS_ARN"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadSecretsManager fetches a JSON secret from AWS Secrets Manager and sets
// any values as environment variables (only if not already set, so explicit
// env vars always win).
func loadSecretsManager(arn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// arn:aws:secretsmanager:REGION:ACCOUNT:secret:NAME
	var opts []func(*awsconfig.LoadOptions) error
	if region := regionFromARN(arn); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &arn,
	})
	if err != nil {
		return fmt.Errorf("GetSecretValue: %w", err)
	}

	if result.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", arn)
	}

	applied, total, err := applySecrets(*result.SecretString)
	if err != nil {
		return err
	}

	log.Printf("config: loaded %d secrets from Secrets Manager (%d keys in secret, env overrides take precedence)", applied, total)
	return nil
}

// applySecrets sets each key of a JSON object as an environment variable
// unless it is already set.
func applySecrets(secretJSON string) (applied, total int, err error) {
	var secrets map[string]string
	if err := json.Unmarshal([]byte(secretJSON), &secrets); err != nil {
		return 0, 0, fmt.Errorf("parse secret JSON: %w", err)
	}

	for key, value := range secrets {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
			applied++
		}
	}
	return applied, len(secrets), nil
}

func regionFromARN(arn string) string {
	if parts := strings.Split(arn, ":"); len(parts) >= 4 {
		return parts[3]
	}
	return ""
}
