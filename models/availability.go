package models

// AvailabilityResult partitions a professional's working window on one date
// into free and booked intervals.
type AvailabilityResult struct {
	ProfessionalID string     `json:"professional_id"`
	Date           string     `json:"date"` // YYYY-MM-DD
	AvailableSlots []TimeSlot `json:"available_slots"`
	BusySlots      []TimeSlot `json:"busy_slots"`
}

// ConflictDimension names the axis on which two bookings collide.
type ConflictDimension string

const (
	ConflictProfessional ConflictDimension = "professional"
	ConflictClient       ConflictDimension = "client"
	ConflictService      ConflictDimension = "service"
)

// ConflictRecord identifies one existing appointment that overlaps a
// candidate booking. Computed, never persisted.
type ConflictRecord struct {
	AppointmentID string            `json:"appointment_id"`
	Dimension     ConflictDimension `json:"dimension"`
	Detail        string            `json:"detail"`
}
