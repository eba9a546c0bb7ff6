package models

import "time"

// ShopHours é o horário padrão do estabelecimento, usado como
// fallback quando o profissional não tem agenda pessoal.
type ShopHours struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index;not null" json:"shop_id"`

	// 0 = domingo ... 6 = sábado (time.Weekday).
	Weekday int `json:"weekday"`

	Active    bool   `json:"active"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffSchedule é a agenda semanal pessoal de um profissional.
type StaffSchedule struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index;not null" json:"staff_id"`

	// 0 = domingo ... 6 = sábado (time.Weekday).
	Weekday int `json:"weekday"`

	Active    bool   `json:"active"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleException sobrepõe a agenda semanal em uma data específica.
// Máximo de uma exceção por (staff, date): índice único abaixo.
type ScheduleException struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"uniqueIndex:idx_staff_exception_date;not null" json:"staff_id"`

	Date string `gorm:"size:10;uniqueIndex:idx_staff_exception_date;not null" json:"date"` // YYYY-MM-DD

	// off | partial | extra
	Kind string `gorm:"size:10;not null" json:"kind"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Note      string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
