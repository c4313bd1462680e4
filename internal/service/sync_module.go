package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// SyncModule reconciles one domain between the local store and the remote ledger
// SyncModule 在本地存储与远端账本之间同步单个业务域
type SyncModule interface {
	Name() domain.Name

	// Validate checks the local records, never touches the remote ledger
	// Validate 校验本地记录，不访问远端
	Validate(ctx context.Context) (domain.ValidationReport, error)

	// Push upserts every local record into the remote ledger
	// Push 将本地记录逐条写入远端
	Push(ctx context.Context, onStep domain.StepFunc) (domain.SyncResult, error)

	// Pull saves every remote record into the local store, remote wins
	// Pull 将远端记录逐条写入本地，远端优先
	Pull(ctx context.Context, onStep domain.StepFunc) (domain.SyncResult, error)
}

// DomainSync generic SyncModule over one record type
type DomainSync[T domain.Record] struct {
	name    domain.Name
	local   domain.EntityRepository[T]
	remote  domain.RemoteLedger[T]
	checker *RecordValidator
	logger  *zap.Logger
}

var _ SyncModule = (*DomainSync[domain.Vehicle])(nil)

// NewDomainSync 创建业务域同步模块
func NewDomainSync[T domain.Record](name domain.Name, local domain.EntityRepository[T], remote domain.RemoteLedger[T], checker *RecordValidator, lg *zap.Logger) *DomainSync[T] {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &DomainSync[T]{
		name:    name,
		local:   local,
		remote:  remote,
		checker: checker,
		logger:  lg,
	}
}

func (m *DomainSync[T]) Name() domain.Name {
	return m.name
}

func (m *DomainSync[T]) Validate(ctx context.Context) (domain.ValidationReport, error) {
	records, err := m.local.GetAll(ctx)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	var issues []domain.ValidationIssue

	ids := make([]string, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, r := range records {
		ids = append(ids, r.GetID())
		seen[r.GetID()]++
	}
	if len(ids) != len(seen) {
		var dups []string
		for id, n := range seen {
			if n > 1 {
				dups = append(dups, fmt.Sprintf("%q", id))
			}
		}
		sort.Strings(dups)
		issues = append(issues, domain.ValidationIssue(fmt.Sprintf("%s: duplicate ids %s", m.name, strings.Join(dups, ", "))))
	}

	if m.checker != nil {
		for i, r := range records {
			issues = append(issues, m.checker.Check(m.name, i, r, r.GetID())...)
		}
	}

	return domain.ValidationReport{OK: len(issues) == 0, Issues: issues}, nil
}

func (m *DomainSync[T]) Push(ctx context.Context, onStep domain.StepFunc) (domain.SyncResult, error) {
	result := domain.SyncResult{Domain: m.name}

	records, err := m.local.GetAll(ctx)
	if err != nil {
		return result, err
	}
	remote, err := m.remote.List(ctx)
	if err != nil {
		return result, err
	}

	existing := make(map[string]struct{}, len(remote))
	for _, r := range remote {
		existing[r.GetID()] = struct{}{}
	}

	total := len(records)
	for _, r := range records {
		if err := m.remote.Upsert(ctx, r); err != nil {
			m.logger.Debug("record push failed",
				zap.String(logger.FieldDomain, m.name.String()),
				zap.String(logger.FieldRecordID, r.GetID()),
				zap.Error(err))
			return result, err
		}
		if _, ok := existing[r.GetID()]; ok {
			result.Updated++
		} else {
			result.Created++
			existing[r.GetID()] = struct{}{}
		}
		result.Processed++
		if onStep != nil {
			onStep(result.Processed, total)
		}
	}

	m.logger.Debug("domain pushed",
		zap.String(logger.FieldDomain, m.name.String()),
		zap.Int(logger.FieldProcessed, result.Processed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated))
	return result, nil
}

func (m *DomainSync[T]) Pull(ctx context.Context, onStep domain.StepFunc) (domain.SyncResult, error) {
	result := domain.SyncResult{Domain: m.name}

	remote, err := m.remote.List(ctx)
	if err != nil {
		return result, err
	}

	total := len(remote)
	for _, r := range remote {
		if err := m.local.Save(ctx, r); err != nil {
			m.logger.Debug("record pull failed",
				zap.String(logger.FieldDomain, m.name.String()),
				zap.String(logger.FieldRecordID, r.GetID()),
				zap.Error(err))
			return result, err
		}
		result.Processed++
		if onStep != nil {
			onStep(result.Processed, total)
		}
	}

	m.logger.Debug("domain pulled",
		zap.String(logger.FieldDomain, m.name.String()),
		zap.Int(logger.FieldProcessed, result.Processed))
	return result, nil
}
