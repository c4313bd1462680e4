package ledger

import (
	"context"
	"net/url"
	"strings"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/logger"
	"github.com/haierkeys/fast-ledger-sync-service/pkg/storage"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const objectExt = ".json"

// ObjectLedger keeps one JSON document per record at <domain>/<id>.json
// ObjectLedger 每条记录一个 JSON 对象，路径为 <domain>/<id>.json
type ObjectLedger[T domain.Record] struct {
	store  storage.Storager
	domain domain.Name
	logger *zap.Logger
}

// NewObjectLedger 创建对象存储账本
func NewObjectLedger[T domain.Record](store storage.Storager, name domain.Name, lg *zap.Logger) *ObjectLedger[T] {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &ObjectLedger[T]{store: store, domain: name, logger: lg}
}

var _ domain.RemoteLedger[domain.FuelEntry] = (*ObjectLedger[domain.FuelEntry])(nil)

func (l *ObjectLedger[T]) key(id string) string {
	return l.domain.String() + "/" + url.PathEscape(id) + objectExt
}

// List 读取本域全部远端记录
func (l *ObjectLedger[T]) List(ctx context.Context) ([]T, error) {
	keys, err := l.store.List(ctx, l.domain.String()+"/")
	if err != nil {
		return nil, domain.NewTransportError(l.domain, "list", err)
	}

	records := make([]T, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, objectExt) {
			continue
		}
		content, err := l.store.Get(ctx, key)
		if err != nil {
			return nil, domain.NewTransportError(l.domain, "list", err)
		}
		var record T
		if err := sonic.Unmarshal(content, &record); err != nil {
			return nil, domain.NewTransportError(l.domain, "list", errors.Wrapf(err, "decode %s", key))
		}
		records = append(records, record)
	}

	l.logger.Debug("object ledger listed",
		zap.String(logger.FieldDomain, l.domain.String()),
		zap.Int(logger.FieldTotal, len(records)))
	return records, nil
}

// Upsert 写入或覆盖远端记录
func (l *ObjectLedger[T]) Upsert(ctx context.Context, record T) error {
	content, err := sonic.Marshal(record)
	if err != nil {
		return domain.NewTransportError(l.domain, "upsert", errors.Wrap(err, "encode record"))
	}
	if err := l.store.Put(ctx, l.key(record.GetID()), content); err != nil {
		return domain.NewTransportError(l.domain, "upsert", err)
	}
	return nil
}
