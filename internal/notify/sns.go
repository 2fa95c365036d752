package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the subset of *sns.Client used by Publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Publisher sends notifications to a single SNS topic.
type Publisher struct {
	client   SNSAPI
	topicARN string
}

// NewPublisher creates a publisher for topicARN.
func NewPublisher(cfg aws.Config, topicARN string) *Publisher {
	return NewPublisherWithClient(sns.NewFromConfig(cfg), topicARN)
}

// NewPublisherWithClient creates a publisher on an existing client.
func NewPublisherWithClient(client SNSAPI, topicARN string) *Publisher {
	return &Publisher{client: client, topicARN: topicARN}
}

// Publish sends message with the given subject and returns the SNS message ID.
func (p *Publisher) Publish(ctx context.Context, subject, message string) (string, error) {
	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("sns: Publish failed for %s: %w", p.topicARN, err)
	}
	return aws.ToString(out.MessageId), nil
}
