package ledger

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage/local_fs"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/juju/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectLedger_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	store, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir(), CustomPath: "ledger"})
	require.NoError(t, err)

	set := NewObjectSet(store, nil)

	list, err := set.Fuel.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, set.Fuel.Upsert(ctx, domain.FuelEntry{ID: "a1", Date: "2024-05-01", TotalAmount: 100}))
	require.NoError(t, set.Fuel.Upsert(ctx, domain.FuelEntry{ID: "a1", Date: "2024-05-01", TotalAmount: 110}))
	require.NoError(t, set.Fuel.Upsert(ctx, domain.FuelEntry{ID: "b/2", Date: "2024-05-02", TotalAmount: 5}))
	require.NoError(t, set.Calendar.Upsert(ctx, domain.CalendarEvent{ID: "e1", Title: "Meet", Date: "2024-05-03"}))

	list, err = set.Fuel.List(ctx)
	require.NoError(t, err)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	assert.Equal(t, []domain.FuelEntry{
		{ID: "a1", Date: "2024-05-01", TotalAmount: 110},
		{ID: "b/2", Date: "2024-05-02", TotalAmount: 5},
	}, list)

	events, err := set.Calendar.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CalendarEvent{{ID: "e1", Title: "Meet", Date: "2024-05-03"}}, events)
}

func TestObjectLedger_CorruptDocumentIsTransportError(t *testing.T) {
	ctx := context.Background()
	store, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "fleet/v1.json", []byte("{not json")))

	_, err = NewObjectLedger[domain.Vehicle](store, domain.Fleet, nil).List(ctx)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.Fleet, te.Domain)
	assert.Equal(t, "list", te.Op)
}

// fakeDynamoDB keeps items per ledger_domain and answers single-page queries.
type fakeDynamoDB struct {
	mu    sync.Mutex
	items map[string]map[string]map[string]types.AttributeValue
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: map[string]map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamoDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := in.Item[attrDomain].(*types.AttributeValueMemberS).Value
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if f.items[d] == nil {
		f.items[d] = map[string]map[string]types.AttributeValue{}
	}
	f.items[d][id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var d string
	for _, v := range in.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			d = s.Value
		}
	}
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items[d] {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func TestDynamoDBLedger_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	set := NewDynamoDBSet(newFakeDynamoDB(), "ledger", nil)

	require.NoError(t, set.Finance.Upsert(ctx, domain.FinanceEntry{ID: "f1", Date: "2024-01-01", Kind: "income", Amount: 12.5, Category: "fares"}))
	require.NoError(t, set.Shift.Upsert(ctx, domain.ShiftJourney{ID: "f1", Date: "2024-01-01", StartTime: "06:00"}))

	finance, err := set.Finance.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.FinanceEntry{{ID: "f1", Date: "2024-01-01", Kind: "income", Amount: 12.5, Category: "fares"}}, finance)

	shifts, err := set.Shift.List(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "06:00", shifts[0].StartTime)

	fleet, err := set.Fleet.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, fleet)
}

func TestRateLimited_CancelledContext(t *testing.T) {
	store, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir()})
	require.NoError(t, err)

	// one token, refilled once per hour
	bucket := ratelimit.NewBucket(time.Hour, 1)
	set := NewObjectSet(store, nil).Throttle(bucket)

	require.NoError(t, set.Fleet.Upsert(context.Background(), domain.Vehicle{ID: "v1", Name: "Van"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = set.Fleet.List(ctx)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBucket(t *testing.T) {
	assert.Nil(t, NewBucket(0, 10))
	assert.NotNil(t, NewBucket(5, 0))
}
