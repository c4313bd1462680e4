package ledger

import (
	"context"
	"time"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"

	"github.com/juju/ratelimit"
)

// RateLimited throttles every call to the wrapped ledger through a shared token bucket
// RateLimited 通过共享令牌桶限制远端调用速率
type RateLimited[T domain.Record] struct {
	next   domain.RemoteLedger[T]
	domain domain.Name
	bucket *ratelimit.Bucket
}

// NewRateLimited wraps next, a nil bucket disables throttling
func NewRateLimited[T domain.Record](next domain.RemoteLedger[T], name domain.Name, bucket *ratelimit.Bucket) domain.RemoteLedger[T] {
	if bucket == nil {
		return next
	}
	return &RateLimited[T]{next: next, domain: name, bucket: bucket}
}

// NewBucket requests per second with burst capacity, nil when rate <= 0
func NewBucket(rate float64, burst int64) *ratelimit.Bucket {
	if rate <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return ratelimit.NewBucketWithRate(rate, burst)
}

func (r *RateLimited[T]) wait(ctx context.Context, op string) error {
	d := r.bucket.Take(1)
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return domain.NewTransportError(r.domain, op, ctx.Err())
	}
}

func (r *RateLimited[T]) List(ctx context.Context) ([]T, error) {
	if err := r.wait(ctx, "list"); err != nil {
		return nil, err
	}
	return r.next.List(ctx)
}

func (r *RateLimited[T]) Upsert(ctx context.Context, record T) error {
	if err := r.wait(ctx, "upsert"); err != nil {
		return err
	}
	return r.next.Upsert(ctx, record)
}

// Throttle wraps every ledger of the set with the same bucket
// Throttle 为集合中的账本统一加上限速
func (s *Set) Throttle(bucket *ratelimit.Bucket) *Set {
	if bucket == nil {
		return s
	}
	return &Set{
		Fleet:    NewRateLimited(s.Fleet, domain.Fleet, bucket),
		Fuel:     NewRateLimited(s.Fuel, domain.Fuel, bucket),
		Finance:  NewRateLimited(s.Finance, domain.Finance, bucket),
		Calendar: NewRateLimited(s.Calendar, domain.Calendar, bucket),
		Shift:    NewRateLimited(s.Shift, domain.Shift, bucket),
	}
}
