package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses список статусов, занимающих временной слот
// Используется фильтрами детектора конфликтов
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// FinalStatuses список терминальных статусов
// Бронирование в терминальном статусе неизменяемо
var FinalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
