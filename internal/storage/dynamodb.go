package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/clouddevops/devopsapp/pkg/types"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by MessageStore.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// MessageStore keeps messages in a DynamoDB table keyed by "id".
type MessageStore struct {
	client DynamoDBAPI
	table  string
}

// NewMessageStore creates a message store backed by the given table.
func NewMessageStore(cfg aws.Config, table string) *MessageStore {
	return NewMessageStoreWithClient(dynamodb.NewFromConfig(cfg), table)
}

// NewMessageStoreWithClient creates a message store on an existing client.
func NewMessageStoreWithClient(client DynamoDBAPI, table string) *MessageStore {
	return &MessageStore{client: client, table: table}
}

// Table returns the table name.
func (s *MessageStore) Table() string {
	return s.table
}

// Put writes a message, replacing any item with the same ID.
func (s *MessageStore) Put(ctx context.Context, msg types.Message) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      messageToItem(msg),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: PutItem failed for %s: %w", msg.ID, err)
	}
	return nil
}

// List scans the whole table and returns messages ordered by timestamp.
func (s *MessageStore) List(ctx context.Context) ([]types.Message, error) {
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	messages := []types.Message{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: Scan failed on %s: %w", s.table, err)
		}
		for _, item := range page.Items {
			messages = append(messages, itemToMessage(item))
		}
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}

func messageToItem(msg types.Message) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"id":        &ddbtypes.AttributeValueMemberS{Value: msg.ID},
		"text":      &ddbtypes.AttributeValueMemberS{Value: msg.Text},
		"timestamp": &ddbtypes.AttributeValueMemberS{Value: msg.Timestamp},
	}
}

func itemToMessage(item map[string]ddbtypes.AttributeValue) types.Message {
	return types.Message{
		ID:        stringAttr(item, "id"),
		Text:      stringAttr(item, "text"),
		Timestamp: stringAttr(item, "timestamp"),
	}
}

// stringAttr reads a string attribute. Numeric IDs written by older clients
// are returned in their decimal form.
func stringAttr(item map[string]ddbtypes.AttributeValue, name string) string {
	switch v := item[name].(type) {
	case *ddbtypes.AttributeValueMemberS:
		return v.Value
	case *ddbtypes.AttributeValueMemberN:
		return v.Value
	default:
		return ""
	}
}
