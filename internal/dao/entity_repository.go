package dao

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/model"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entityRepository one table per domain, T is the domain record and M its gorm model
// entityRepository 每个业务域一张表
type entityRepository[T domain.Record, M any] struct {
	dao    *Dao
	domain domain.Name
	table  string
}

var _ domain.EntityRepository[domain.Vehicle] = (*entityRepository[domain.Vehicle, model.FleetVehicle])(nil)

// NewFleetRepository 车队仓储
func NewFleetRepository(dao *Dao) domain.EntityRepository[domain.Vehicle] {
	return &entityRepository[domain.Vehicle, model.FleetVehicle]{dao: dao, domain: domain.Fleet, table: model.TableNameFleetVehicle}
}

// NewFuelRepository 加油记录仓储
func NewFuelRepository(dao *Dao) domain.EntityRepository[domain.FuelEntry] {
	return &entityRepository[domain.FuelEntry, model.FuelEntry]{dao: dao, domain: domain.Fuel, table: model.TableNameFuelEntry}
}

// NewFinanceRepository 收支仓储
func NewFinanceRepository(dao *Dao) domain.EntityRepository[domain.FinanceEntry] {
	return &entityRepository[domain.FinanceEntry, model.FinanceEntry]{dao: dao, domain: domain.Finance, table: model.TableNameFinanceEntry}
}

// NewCalendarRepository 日程仓储
func NewCalendarRepository(dao *Dao) domain.EntityRepository[domain.CalendarEvent] {
	return &entityRepository[domain.CalendarEvent, model.CalendarEvent]{dao: dao, domain: domain.Calendar, table: model.TableNameCalendarEvent}
}

// NewShiftRepository 班次仓储
func NewShiftRepository(dao *Dao) domain.EntityRepository[domain.ShiftJourney] {
	return &entityRepository[domain.ShiftJourney, model.ShiftJourney]{dao: dao, domain: domain.Shift, table: model.TableNameShiftJourney}
}

func (r *entityRepository[T, M]) toDomain(m *M) (T, error) {
	var d T
	err := copier.Copy(&d, m)
	return d, err
}

func (r *entityRepository[T, M]) toModel(d T) (*M, error) {
	m := new(M)
	err := copier.Copy(m, &d)
	return m, err
}

func (r *entityRepository[T, M]) fail(op string, err error) error {
	return domain.NewTransportError(r.domain, op, errors.WithStack(err))
}

// GetAll 获取全部记录，按 id 排序
func (r *entityRepository[T, M]) GetAll(ctx context.Context) ([]T, error) {
	var rows []*M
	if err := r.dao.DB.WithContext(ctx).Table(r.table).Order("id").Find(&rows).Error; err != nil {
		return nil, r.fail("get all", err)
	}

	list := make([]T, 0, len(rows))
	for _, m := range rows {
		d, err := r.toDomain(m)
		if err != nil {
			return nil, r.fail("get all", err)
		}
		list = append(list, d)
	}
	return list, nil
}

// Save 按 id 新增或覆盖
func (r *entityRepository[T, M]) Save(ctx context.Context, record T) error {
	m, err := r.toModel(record)
	if err != nil {
		return r.fail("save", err)
	}
	err = r.dao.ExecuteWrite(ctx, r.table, func(db *gorm.DB) error {
		return db.Table(r.table).Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
	})
	if err != nil {
		return r.fail("save", err)
	}
	return nil
}

// Update 更新已存在的记录
func (r *entityRepository[T, M]) Update(ctx context.Context, record T) error {
	m, err := r.toModel(record)
	if err != nil {
		return r.fail("update", err)
	}
	err = r.dao.ExecuteWrite(ctx, r.table, func(db *gorm.DB) error {
		var count int64
		if err := db.Table(r.table).Where("id = ?", record.GetID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrRecordNotFound
		}
		return db.Table(r.table).Save(m).Error
	})
	return r.writeErr("update", err)
}

// Delete 按 id 删除
func (r *entityRepository[T, M]) Delete(ctx context.Context, id string) error {
	err := r.dao.ExecuteWrite(ctx, r.table, func(db *gorm.DB) error {
		res := db.Table(r.table).Where("id = ?", id).Delete(new(M))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecordNotFound
		}
		return nil
	})
	return r.writeErr("delete", err)
}

func (r *entityRepository[T, M]) writeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrRecordNotFound):
		return err
	default:
		return r.fail(op, err)
	}
}
