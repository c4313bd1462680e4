// Package synctest in-memory stores with failure injection, for tests only
// Package synctest 仅供测试使用的内存存储，支持故障注入
package synctest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
)

// ErrInjected is the cause carried by injected failures
var ErrInjected = errors.New("injected failure")

// Failure fails the n-th call (1-based) of op, 0 never fails
type Failure struct {
	Op string
	N  int
}

type store[T domain.Record] struct {
	mu      sync.Mutex
	name    domain.Name
	records map[string]T
	order   []string
	calls   map[string]int
	fail    []Failure
}

func newStore[T domain.Record](name domain.Name, seed []T) *store[T] {
	s := &store[T]{name: name, records: map[string]T{}, calls: map[string]int{}}
	for _, r := range seed {
		s.put(r)
	}
	return s
}

func (s *store[T]) put(r T) bool {
	_, exists := s.records[r.GetID()]
	if !exists {
		s.order = append(s.order, r.GetID())
	}
	s.records[r.GetID()] = r
	return exists
}

func (s *store[T]) call(op string) error {
	s.calls[op]++
	for _, f := range s.fail {
		if f.Op == op && f.N == s.calls[op] {
			return domain.NewTransportError(s.name, op, ErrInjected)
		}
	}
	return nil
}

func (s *store[T]) snapshot() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Repository in-memory domain.EntityRepository, insertion ordered
type Repository[T domain.Record] struct {
	s *store[T]
	// extra records returned by GetAll after the keyed ones, used to model duplicate ids
	dups []T
}

var _ domain.EntityRepository[domain.Vehicle] = (*Repository[domain.Vehicle])(nil)

// NewRepository seeds a repository, later records with a repeated id replace earlier ones
func NewRepository[T domain.Record](name domain.Name, seed ...T) *Repository[T] {
	return &Repository[T]{s: newStore(name, seed)}
}

// WithDuplicates appends raw records to every GetAll result without deduplication
func (r *Repository[T]) WithDuplicates(extra ...T) *Repository[T] {
	r.dups = append(r.dups, extra...)
	return r
}

// FailOn injects a failure on the n-th call of op ("get all", "save", "update", "delete")
func (r *Repository[T]) FailOn(op string, n int) *Repository[T] {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.fail = append(r.s.fail, Failure{Op: op, N: n})
	return r
}

func (r *Repository[T]) GetAll(_ context.Context) ([]T, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("get all"); err != nil {
		return nil, err
	}
	return append(r.s.snapshot(), r.dups...), nil
}

func (r *Repository[T]) Save(_ context.Context, record T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("save"); err != nil {
		return err
	}
	r.s.put(record)
	return nil
}

func (r *Repository[T]) Update(_ context.Context, record T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("update"); err != nil {
		return err
	}
	if _, ok := r.s.records[record.GetID()]; !ok {
		return domain.ErrRecordNotFound
	}
	r.s.records[record.GetID()] = record
	return nil
}

func (r *Repository[T]) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("delete"); err != nil {
		return err
	}
	if _, ok := r.s.records[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.s.records, id)
	for i, v := range r.s.order {
		if v == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Records current contents in insertion order
func (r *Repository[T]) Records() []T {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.snapshot()
}

// Calls number of calls made to op
func (r *Repository[T]) Calls(op string) int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.calls[op]
}

// Ledger in-memory domain.RemoteLedger
type Ledger[T domain.Record] struct {
	s *store[T]
}

var _ domain.RemoteLedger[domain.Vehicle] = (*Ledger[domain.Vehicle])(nil)

// NewLedger seeds a remote ledger
func NewLedger[T domain.Record](name domain.Name, seed ...T) *Ledger[T] {
	return &Ledger[T]{s: newStore(name, seed)}
}

// FailOn injects a failure on the n-th call of op ("list", "upsert")
func (l *Ledger[T]) FailOn(op string, n int) *Ledger[T] {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.fail = append(l.s.fail, Failure{Op: op, N: n})
	return l
}

func (l *Ledger[T]) List(_ context.Context) ([]T, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if err := l.s.call("list"); err != nil {
		return nil, err
	}
	return l.s.snapshot(), nil
}

func (l *Ledger[T]) Upsert(_ context.Context, record T) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if err := l.s.call("upsert"); err != nil {
		return err
	}
	l.s.put(record)
	return nil
}

// Records current contents sorted by id
func (l *Ledger[T]) Records() []T {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	out := l.s.snapshot()
	sort.Slice(out, func(i, j int) bool { return out[i].GetID() < out[j].GetID() })
	return out
}

// Calls number of calls made to op
func (l *Ledger[T]) Calls(op string) int {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.calls[op]
}
