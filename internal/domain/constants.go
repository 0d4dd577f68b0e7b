package domain

import "time"

// Scheduling constants. Candidate slot starts advance by SlotStepMinutes
// while every appointment occupies DefaultAppointmentDurationMinutes, so
// adjacent candidates overlap each other's occupancy window on purpose -
// only one of them can ultimately be booked.
const (
	SlotStepMinutes                   = 30
	DefaultAppointmentDurationMinutes = 60
)

// SlotStep шаг перебора кандидатов слотов
const SlotStep = SlotStepMinutes * time.Minute

// DefaultAppointmentDuration окно занятости записи по умолчанию
const DefaultAppointmentDuration = DefaultAppointmentDurationMinutes * time.Minute

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxGiftCardCentsStep = 100 // суммы подарочных карт кратны доллару
	GiftCardCodePrefix   = "KQ-"
	GiftCardCodeLength   = 8
)
