// Package domain defines the records, store contracts and errors shared by the sync engine
// Package domain 定义同步引擎共享的记录、存储契约与错误
package domain

// Name identifies one of the synchronized business domains
// Name 业务域名称
type Name string

const (
	Fleet    Name = "fleet"
	Fuel     Name = "fuel"
	Finance  Name = "finance"
	Calendar Name = "calendar"
	Shift    Name = "shift"
)

// Order returns the fixed sequence in which domains are synchronized.
// Order 同步时各业务域的固定顺序
func Order() []Name {
	return []Name{Fleet, Fuel, Finance, Calendar, Shift}
}

func (n Name) String() string {
	return string(n)
}

// Record is the single requirement the engine places on a domain payload.
type Record interface {
	GetID() string
}

// Vehicle 车队车辆
type Vehicle struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Plate     string  `json:"plate"`
	Model     string  `json:"model"`
	DailyRate float64 `json:"dailyRate"`
	Status    string  `json:"status"`
	Notes     string  `json:"notes"`
}

func (v Vehicle) GetID() string { return v.ID }

// FuelEntry 加油记录
type FuelEntry struct {
	ID            string  `json:"id" validate:"required"`
	VehicleID     string  `json:"vehicleId"`
	Date          string  `json:"date" validate:"required"`
	Liters        float64 `json:"liters"`
	PricePerLiter float64 `json:"pricePerLiter"`
	TotalAmount   float64 `json:"totalAmount" validate:"required"`
	Odometer      float64 `json:"odometer"`
	Station       string  `json:"station"`
}

func (f FuelEntry) GetID() string { return f.ID }

// FinanceEntry 收支记录
type FinanceEntry struct {
	ID          string  `json:"id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Kind        string  `json:"kind" validate:"required,oneof=income expense"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" validate:"required"`
	Description string  `json:"description"`
}

func (f FinanceEntry) GetID() string { return f.ID }

// CalendarEvent 日程
type CalendarEvent struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

func (c CalendarEvent) GetID() string { return c.ID }

// ShiftJourney 班次/行程
type ShiftJourney struct {
	ID        string  `json:"id" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"startTime" validate:"required"`
	EndTime   string  `json:"endTime"`
	Distance  float64 `json:"distance"`
	Earnings  float64 `json:"earnings"`
	Notes     string  `json:"notes"`
}

func (s ShiftJourney) GetID() string { return s.ID }
