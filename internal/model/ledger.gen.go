package model

import "time"

const (
	TableNameFleetVehicle  = "fleet_vehicle"
	TableNameFuelEntry     = "fuel_entry"
	TableNameFinanceEntry  = "finance_entry"
	TableNameCalendarEvent = "calendar_event"
	TableNameShiftJourney  = "shift_journey"
)

// FleetVehicle mapped from table <fleet_vehicle>
type FleetVehicle struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Plate     string    `gorm:"column:plate;index:idx_fleet_vehicle_plate" json:"plate"`
	Model     string    `gorm:"column:model" json:"model"`
	DailyRate float64   `gorm:"column:daily_rate" json:"dailyRate"`
	Status    string    `gorm:"column:status" json:"status"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName FleetVehicle's table name
func (*FleetVehicle) TableName() string {
	return TableNameFleetVehicle
}

// FuelEntry mapped from table <fuel_entry>
type FuelEntry struct {
	ID            string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	VehicleID     string    `gorm:"column:vehicle_id;index:idx_fuel_entry_vehicle" json:"vehicleId"`
	Date          string    `gorm:"column:date;not null" json:"date"`
	Liters        float64   `gorm:"column:liters" json:"liters"`
	PricePerLiter float64   `gorm:"column:price_per_liter" json:"pricePerLiter"`
	TotalAmount   float64   `gorm:"column:total_amount" json:"totalAmount"`
	Odometer      float64   `gorm:"column:odometer" json:"odometer"`
	Station       string    `gorm:"column:station" json:"station"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName FuelEntry's table name
func (*FuelEntry) TableName() string {
	return TableNameFuelEntry
}

// FinanceEntry mapped from table <finance_entry>
type FinanceEntry struct {
	ID          string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Date        string    `gorm:"column:date;not null" json:"date"`
	Kind        string    `gorm:"column:kind;not null" json:"kind"`
	Category    string    `gorm:"column:category" json:"category"`
	Amount      float64   `gorm:"column:amount" json:"amount"`
	Description string    `gorm:"column:description" json:"description"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName FinanceEntry's table name
func (*FinanceEntry) TableName() string {
	return TableNameFinanceEntry
}

// CalendarEvent mapped from table <calendar_event>
type CalendarEvent struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Date      string    `gorm:"column:date;not null;index:idx_calendar_event_date" json:"date"`
	StartTime string    `gorm:"column:start_time" json:"startTime"`
	EndTime   string    `gorm:"column:end_time" json:"endTime"`
	Location  string    `gorm:"column:location" json:"location"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName CalendarEvent's table name
func (*CalendarEvent) TableName() string {
	return TableNameCalendarEvent
}

// ShiftJourney mapped from table <shift_journey>
type ShiftJourney struct {
	ID        string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Date      string    `gorm:"column:date;not null" json:"date"`
	StartTime string    `gorm:"column:start_time;not null" json:"startTime"`
	EndTime   string    `gorm:"column:end_time" json:"endTime"`
	Distance  float64   `gorm:"column:distance" json:"distance"`
	Earnings  float64   `gorm:"column:earnings" json:"earnings"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName ShiftJourney's table name
func (*ShiftJourney) TableName() string {
	return TableNameShiftJourney
}
