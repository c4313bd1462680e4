// Package model gorm table mappings for the local store
// Package model 本地存储的 gorm 表映射
package model

import (
	"gorm.io/gorm"
)

// Tables returns a fresh zero value of every table model
func Tables() []any {
	return []any{
		&FleetVehicle{},
		&FuelEntry{},
		&FinanceEntry{},
		&CalendarEvent{},
		&ShiftJourney{},
		&SyncHistory{},
	}
}

// AutoMigrate migrates one table by model name, or every table when key is empty
// AutoMigrate 按模型名迁移单表，key 为空时迁移全部
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "":
		return db.AutoMigrate(Tables()...)
	case "FleetVehicle":
		return db.AutoMigrate(&FleetVehicle{})
	case "FuelEntry":
		return db.AutoMigrate(&FuelEntry{})
	case "FinanceEntry":
		return db.AutoMigrate(&FinanceEntry{})
	case "CalendarEvent":
		return db.AutoMigrate(&CalendarEvent{})
	case "ShiftJourney":
		return db.AutoMigrate(&ShiftJourney{})
	case "SyncHistory":
		return db.AutoMigrate(&SyncHistory{})
	}
	return nil
}
