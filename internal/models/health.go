package models

type HealthStatus string

const (
	HealthUp       HealthStatus = "UP"
	HealthDegraded HealthStatus = "DEGRADED"
	HealthDown     HealthStatus = "DOWN"
)

// Health is a named service health record maintained by editors.
type Health struct {
	BaseModel

	Name    string       `gorm:"not null" json:"name"`
	Status  HealthStatus `gorm:"type:varchar(16);not null;default:UP" json:"status"`
	Details string       `json:"details"`
}

func (s HealthStatus) Valid() bool {
	switch s {
	case HealthUp, HealthDegraded, HealthDown:
		return true
	}
	return false
}
