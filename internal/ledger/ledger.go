// Package ledger remote ledger implementations backed by object storage or DynamoDB
// Package ledger 基于对象存储或 DynamoDB 的远端账本实现
package ledger

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	TypeObject   = "object"
	TypeDynamoDB = "dynamodb"
)

// Config 远端账本配置
type Config struct {
	// Type object or dynamodb
	Type string `yaml:"type" default:"object"`
	// RateLimit remote calls per second, 0 disables throttling
	RateLimit float64 `yaml:"rate-limit" default:"0"`
	// RateBurst token bucket capacity
	RateBurst int64          `yaml:"rate-burst" default:"10"`
	Object    storage.Config `yaml:"object"`
	DynamoDB  DynamoDBConfig `yaml:"dynamodb"`
}

// Set the remote ledgers of all five domains
// Set 五个业务域的远端账本
type Set struct {
	Fleet    domain.RemoteLedger[domain.Vehicle]
	Fuel     domain.RemoteLedger[domain.FuelEntry]
	Finance  domain.RemoteLedger[domain.FinanceEntry]
	Calendar domain.RemoteLedger[domain.CalendarEvent]
	Shift    domain.RemoteLedger[domain.ShiftJourney]
}

// NewSet builds the configured backend for every domain
// NewSet 按配置为每个业务域创建账本
func NewSet(ctx context.Context, c Config, lg *zap.Logger) (*Set, error) {
	if lg == nil {
		lg = zap.NewNop()
	}

	var set *Set
	switch c.Type {
	case TypeObject, "":
		store, err := storage.NewClient(ctx, &c.Object, lg)
		if err != nil {
			return nil, errors.Wrap(err, "create object storage failed")
		}
		set = NewObjectSet(store, lg)
	case TypeDynamoDB:
		client, err := NewDynamoDBClient(ctx, c.DynamoDB)
		if err != nil {
			return nil, errors.Wrap(err, "create dynamodb client failed")
		}
		set = NewDynamoDBSet(client, c.DynamoDB.Table, lg)
	default:
		return nil, errors.Errorf("unsupported remote type: %s", c.Type)
	}

	lg.Info("remote ledger ready",
		zap.String("type", c.Type),
		zap.Float64("rateLimit", c.RateLimit))

	return set.Throttle(NewBucket(c.RateLimit, c.RateBurst)), nil
}

// NewObjectSet 对象存储账本集合
func NewObjectSet(store storage.Storager, lg *zap.Logger) *Set {
	return &Set{
		Fleet:    NewObjectLedger[domain.Vehicle](store, domain.Fleet, lg),
		Fuel:     NewObjectLedger[domain.FuelEntry](store, domain.Fuel, lg),
		Finance:  NewObjectLedger[domain.FinanceEntry](store, domain.Finance, lg),
		Calendar: NewObjectLedger[domain.CalendarEvent](store, domain.Calendar, lg),
		Shift:    NewObjectLedger[domain.ShiftJourney](store, domain.Shift, lg),
	}
}

// NewDynamoDBSet DynamoDB 账本集合
func NewDynamoDBSet(client DynamoDBAPI, table string, lg *zap.Logger) *Set {
	return &Set{
		Fleet:    NewDynamoDBLedger[domain.Vehicle](client, table, domain.Fleet, lg),
		Fuel:     NewDynamoDBLedger[domain.FuelEntry](client, table, domain.Fuel, lg),
		Finance:  NewDynamoDBLedger[domain.FinanceEntry](client, table, domain.Finance, lg),
		Calendar: NewDynamoDBLedger[domain.CalendarEvent](client, table, domain.Calendar, lg),
		Shift:    NewDynamoDBLedger[domain.ShiftJourney](client, table, domain.Shift, lg),
	}
}
