package service

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// SyncOption per-call options of a push or pull
// SyncOption 单次同步选项
type SyncOption func(*syncOptions)

type syncOptions struct {
	policy   string
	skip     bool
	onResult func(domain.Direction, domain.SyncResult)
}

// WithSkipValidation never validates before this call, whatever the configured policy
// WithSkipValidation 本次调用跳过校验
func WithSkipValidation() SyncOption {
	return func(o *syncOptions) { o.skip = true }
}

// WithValidationPolicy overrides the configured policy for this call
// WithValidationPolicy 本次调用使用指定的校验策略
func WithValidationPolicy(policy string) SyncOption {
	return func(o *syncOptions) { o.policy = policy }
}

// WithResultSink receives the result of every module that completed during this call
// WithResultSink 本次调用中每个业务域完成后的回调
func WithResultSink(fn func(domain.Direction, domain.SyncResult)) SyncOption {
	return func(o *syncOptions) { o.onResult = fn }
}

// SyncOrchestrator runs the domain modules in order and folds their progress into one fraction
// SyncOrchestrator 按固定顺序执行各业务域，并汇总进度
type SyncOrchestrator struct {
	modules   []SyncModule
	validator *Validator
	policy    string
	logger    *zap.Logger
}

// NewSyncOrchestrator modules must already be in domain.Order()
// NewSyncOrchestrator 创建同步编排器
func NewSyncOrchestrator(modules []SyncModule, cfg *ServiceConfig, lg *zap.Logger) *SyncOrchestrator {
	if lg == nil {
		lg = zap.NewNop()
	}
	policy := ValidationAdvisory
	if cfg != nil && cfg.Sync.ValidationPolicy != "" {
		policy = cfg.Sync.ValidationPolicy
	}
	return &SyncOrchestrator{
		modules:   modules,
		validator: NewValidator(modules),
		policy:    policy,
		logger:    lg,
	}
}

// Validator 校验器
func (o *SyncOrchestrator) Validator() *Validator {
	return o.validator
}

// Push local to remote for every domain
// Push 将全部业务域从本地推送到远端
func (o *SyncOrchestrator) Push(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) error {
	return o.run(ctx, domain.DirectionPush, onProgress, opts)
}

// Pull remote to local for every domain
// Pull 将全部业务域从远端拉取到本地
func (o *SyncOrchestrator) Pull(ctx context.Context, onProgress domain.ProgressFunc, opts ...SyncOption) error {
	return o.run(ctx, domain.DirectionPull, onProgress, opts)
}

func (o *SyncOrchestrator) run(ctx context.Context, direction domain.Direction, onProgress domain.ProgressFunc, opts []SyncOption) error {
	options := syncOptions{policy: o.policy}
	for _, opt := range opts {
		opt(&options)
	}

	if !options.skip {
		if err := o.checkLocal(ctx, direction, options.policy); err != nil {
			return err
		}
	}

	report := func(f float64) {
		if onProgress != nil {
			onProgress(f)
		}
	}

	n := float64(len(o.modules))
	report(0)

	for i, m := range o.modules {
		stage := float64(i)
		step := func(processed, total int) {
			if total > 0 {
				report((stage + float64(processed)/float64(total)) / n)
			}
		}

		var (
			result domain.SyncResult
			err    error
		)
		if direction == domain.DirectionPush {
			result, err = m.Push(ctx, step)
		} else {
			result, err = m.Pull(ctx, step)
		}
		if err != nil {
			o.logger.Warn("domain sync failed",
				zap.String(logger.FieldDirection, string(direction)),
				zap.String(logger.FieldDomain, m.Name().String()),
				zap.Int(logger.FieldProcessed, result.Processed),
				zap.Error(err))
			return err
		}

		if options.onResult != nil {
			options.onResult(direction, result)
		}
		if i == len(o.modules)-1 {
			report(1)
		} else {
			report((stage + 1) / n)
		}
	}

	if len(o.modules) == 0 {
		report(1)
	}
	return nil
}

// checkLocal validates the local records; only the block policy turns issues into an error
func (o *SyncOrchestrator) checkLocal(ctx context.Context, direction domain.Direction, policy string) error {
	report, err := o.validator.ValidateAll(ctx)
	if policy == ValidationBlock {
		if err != nil {
			return err
		}
		if !report.OK {
			return &domain.ValidationFailedError{Report: report}
		}
		return nil
	}

	// advisory: the sync itself surfaces any store failure
	if err != nil {
		o.logger.Warn("local validation skipped", zap.String(logger.FieldDirection, string(direction)), zap.Error(err))
		return nil
	}
	if report.OK {
		o.logger.Info("local validation passed", zap.String(logger.FieldDirection, string(direction)))
		return nil
	}
	o.logger.Info("local validation reported issues, sync proceeds",
		zap.String(logger.FieldDirection, string(direction)),
		zap.Int("issues", len(report.Issues)),
		zap.Strings("sample", firstIssues(report.Issues, 5)))
	return nil
}

func firstIssues(issues []domain.ValidationIssue, n int) []string {
	if len(issues) < n {
		n = len(issues)
	}
	out := make([]string, 0, n)
	for _, is := range issues[:n] {
		out = append(out, string(is))
	}
	return out
}
