package service

import (
	"testing"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/synctest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture five in-memory local stores and remote ledgers; replace any field before build
type fixture struct {
	fleetLocal    *synctest.Repository[domain.Vehicle]
	fuelLocal     *synctest.Repository[domain.FuelEntry]
	financeLocal  *synctest.Repository[domain.FinanceEntry]
	calendarLocal *synctest.Repository[domain.CalendarEvent]
	shiftLocal    *synctest.Repository[domain.ShiftJourney]

	fleetRemote    *synctest.Ledger[domain.Vehicle]
	fuelRemote     *synctest.Ledger[domain.FuelEntry]
	financeRemote  *synctest.Ledger[domain.FinanceEntry]
	calendarRemote *synctest.Ledger[domain.CalendarEvent]
	shiftRemote    *synctest.Ledger[domain.ShiftJourney]

	logger       *zap.Logger
	modules      []SyncModule
	orchestrator *SyncOrchestrator
}

func newFixture() *fixture {
	return &fixture{
		fleetLocal:    synctest.NewRepository[domain.Vehicle](domain.Fleet),
		fuelLocal:     synctest.NewRepository[domain.FuelEntry](domain.Fuel),
		financeLocal:  synctest.NewRepository[domain.FinanceEntry](domain.Finance),
		calendarLocal: synctest.NewRepository[domain.CalendarEvent](domain.Calendar),
		shiftLocal:    synctest.NewRepository[domain.ShiftJourney](domain.Shift),

		fleetRemote:    synctest.NewLedger[domain.Vehicle](domain.Fleet),
		fuelRemote:     synctest.NewLedger[domain.FuelEntry](domain.Fuel),
		financeRemote:  synctest.NewLedger[domain.FinanceEntry](domain.Finance),
		calendarRemote: synctest.NewLedger[domain.CalendarEvent](domain.Calendar),
		shiftRemote:    synctest.NewLedger[domain.ShiftJourney](domain.Shift),
	}
}

func (f *fixture) build(t testing.TB, cfg *ServiceConfig) *fixture {
	t.Helper()

	checker, err := NewRecordValidator()
	require.NoError(t, err)

	f.modules = []SyncModule{
		NewDomainSync[domain.Vehicle](domain.Fleet, f.fleetLocal, f.fleetRemote, checker, nil),
		NewDomainSync[domain.FuelEntry](domain.Fuel, f.fuelLocal, f.fuelRemote, checker, nil),
		NewDomainSync[domain.FinanceEntry](domain.Finance, f.financeLocal, f.financeRemote, checker, nil),
		NewDomainSync[domain.CalendarEvent](domain.Calendar, f.calendarLocal, f.calendarRemote, checker, nil),
		NewDomainSync[domain.ShiftJourney](domain.Shift, f.shiftLocal, f.shiftRemote, checker, nil),
	}
	f.orchestrator = NewSyncOrchestrator(f.modules, cfg, f.logger)
	return f
}

// progressRecorder collects every fraction delivered to onProgress
type progressRecorder struct {
	values []float64
}

func (p *progressRecorder) record(f float64) {
	p.values = append(p.values, f)
}

func ids[T domain.Record](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.GetID())
	}
	return out
}
