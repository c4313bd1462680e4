package ledger

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// partition key of the ledger table, the sort key is the record's "id"
const attrDomain = "ledger_domain"

// DynamoDBConfig DynamoDB 账本配置
type DynamoDBConfig struct {
	Table           string `yaml:"table" default:"ledger"`
	Region          string `yaml:"region" default:"us-east-1"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
}

// DynamoDBAPI the subset of the DynamoDB client the ledger calls
type DynamoDBAPI interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// NewDynamoDBClient 创建 DynamoDB 客户端
func NewDynamoDBClient(ctx context.Context, c DynamoDBConfig) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.AccessKeySecret, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "dynamodb")
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	}), nil
}

// DynamoDBLedger stores every domain in one table keyed by (ledger_domain, id)
// DynamoDBLedger 所有业务域共用一张表，主键为 (ledger_domain, id)
type DynamoDBLedger[T domain.Record] struct {
	client DynamoDBAPI
	table  string
	domain domain.Name
	logger *zap.Logger
}

// NewDynamoDBLedger 创建 DynamoDB 账本
func NewDynamoDBLedger[T domain.Record](client DynamoDBAPI, table string, name domain.Name, lg *zap.Logger) *DynamoDBLedger[T] {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &DynamoDBLedger[T]{client: client, table: table, domain: name, logger: lg}
}

var _ domain.RemoteLedger[domain.CalendarEvent] = (*DynamoDBLedger[domain.CalendarEvent])(nil)

func jsonTags(o *attributevalue.EncoderOptions) { o.TagKey = "json" }

func jsonTagsDecode(o *attributevalue.DecoderOptions) { o.TagKey = "json" }

// List 查询本域全部记录
func (l *DynamoDBLedger[T]) List(ctx context.Context) ([]T, error) {
	keyExpr := expression.Key(attrDomain).Equal(expression.Value(l.domain.String()))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, domain.NewTransportError(l.domain, "list", errors.Wrap(err, "build expression"))
	}

	paginator := dynamodb.NewQueryPaginator(l.client, &dynamodb.QueryInput{
		TableName:                 aws.String(l.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var records []T
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, domain.NewTransportError(l.domain, "list", errors.Wrap(err, "query"))
		}
		for _, item := range page.Items {
			var record T
			if err := attributevalue.UnmarshalMapWithOptions(item, &record, jsonTagsDecode); err != nil {
				return nil, domain.NewTransportError(l.domain, "list", errors.Wrap(err, "decode item"))
			}
			records = append(records, record)
		}
	}

	l.logger.Debug("dynamodb ledger listed",
		zap.String(logger.FieldDomain, l.domain.String()),
		zap.Int(logger.FieldTotal, len(records)))
	return records, nil
}

// Upsert 写入或覆盖记录
func (l *DynamoDBLedger[T]) Upsert(ctx context.Context, record T) error {
	item, err := attributevalue.MarshalMapWithOptions(record, jsonTags)
	if err != nil {
		return domain.NewTransportError(l.domain, "upsert", errors.Wrap(err, "encode item"))
	}
	item[attrDomain] = &types.AttributeValueMemberS{Value: l.domain.String()}

	_, err = l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item:      item,
	})
	if err != nil {
		return domain.NewTransportError(l.domain, "upsert", errors.Wrap(err, "put item"))
	}
	return nil
}
