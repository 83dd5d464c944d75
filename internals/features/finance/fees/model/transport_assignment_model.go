package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransportStatusActive   = "active"
	TransportStatusInactive = "inactive"
)

// --- MODEL transport_assignments ---------------------------------------------
// Override harga "Transport Fee" per siswa (tidak lewat class_fees).
type TransportAssignment struct {
	TransportAssignmentID          uuid.UUID       `json:"transport_assignment_id" gorm:"column:transport_assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	TransportAssignmentStudentID   uuid.UUID       `json:"transport_assignment_student_id" gorm:"column:transport_assignment_student_id;type:uuid;not null;index:idx_transport_assignments_student"`
	TransportAssignmentRouteID     string          `json:"transport_assignment_route_id" gorm:"column:transport_assignment_route_id;type:varchar(60);not null"`
	TransportAssignmentMonthlyFare decimal.Decimal `json:"transport_assignment_monthly_fare" gorm:"column:transport_assignment_monthly_fare;type:numeric(14,2);not null;default:0"`
	TransportAssignmentStatus      string          `json:"transport_assignment_status" gorm:"column:transport_assignment_status;type:varchar(20);not null;default:'active'"`

	TransportAssignmentCreatedAt time.Time `json:"transport_assignment_created_at" gorm:"column:transport_assignment_created_at;type:timestamptz;not null;autoCreateTime"`
	TransportAssignmentUpdatedAt time.Time `json:"transport_assignment_updated_at" gorm:"column:transport_assignment_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (TransportAssignment) TableName() string { return "transport_assignments" }

func (m TransportAssignment) IsActive() bool {
	return strings.EqualFold(strings.TrimSpace(m.TransportAssignmentStatus), TransportStatusActive)
}
