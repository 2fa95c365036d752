package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Clear env to test defaults
	os.Unsetenv("PORT")
	os.Unsetenv("INSTANCE_ID")
	os.Unsetenv("AWS_REGION")
	os.Unsetenv("DEVOPSAPP_TABLE_NAME")
	os.Unsetenv("DEVOPSAPP_SECRETS_ARN")
	os.Unsetenv("SNS_TOPIC_ARN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Port)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("expected region us-east-1, got %s", cfg.Region)
	}
	if cfg.TableName != "DevOpsMessages" {
		t.Errorf("expected table DevOpsMessages, got %s", cfg.TableName)
	}
	if cfg.InstanceID != "" {
		t.Errorf("expected empty instance ID, got %s", cfg.InstanceID)
	}
	if cfg.SNSTopicARN != "" {
		t.Errorf("expected no SNS topic, got %s", cfg.SNSTopicARN)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("INSTANCE_ID", " i-0abcd1234 ")
	t.Setenv("AWS_REGION", "ap-south-1")
	t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:ap-south-1:123456789012:devops")
	t.Setenv("DEVOPSAPP_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.InstanceID != "i-0abcd1234" {
		t.Errorf("expected trimmed instance ID i-0abcd1234, got %q", cfg.InstanceID)
	}
	if cfg.Region != "ap-south-1" {
		t.Errorf("expected region ap-south-1, got %s", cfg.Region)
	}
	if cfg.SNSTopicARN != "arn:aws:sns:ap-south-1:123456789012:devops" {
		t.Errorf("unexpected SNS topic %s", cfg.SNSTopicARN)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("expected API key test-key, got %s", cfg.APIKey)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid port, got nil")
	}
}

func TestApplySecretsEnvWins(t *testing.T) {
	t.Setenv("INSTANCE_ID", "i-from-env")
	os.Unsetenv("DEVOPSAPP_API_KEY")
	t.Cleanup(func() { os.Unsetenv("DEVOPSAPP_API_KEY") })

	applied, total, err := applySecrets(`{"INSTANCE_ID":"i-from-secret","DEVOPSAPP_API_KEY":"k"}`)
	if err != nil {
		t.Fatalf("applySecrets() error: %v", err)
	}
	if applied != 1 || total != 2 {
		t.Errorf("expected 1 of 2 applied, got %d of %d", applied, total)
	}
	if got := os.Getenv("INSTANCE_ID"); got != "i-from-env" {
		t.Errorf("expected env value to win, got %s", got)
	}
	if got := os.Getenv("DEVOPSAPP_API_KEY"); got != "k" {
		t.Errorf("expected secret value applied, got %s", got)
	}
}

func TestApplySecretsInvalidJSON(t *testing.T) {
	if _, _, err := applySecrets("not json"); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestRegionFromARN(t *testing.T) {
	if got := regionFromARN("arn:aws:secretsmanager:eu-central-1:123456789012:secret:app"); got != "eu-central-1" {
		t.Errorf("expected eu-central-1, got %s", got)
	}
	if got := regionFromARN("bogus"); got != "" {
		t.Errorf("expected empty region, got %s", got)
	}
}
