package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// Upsert per siswa (PUT /transport-assignments/:student_id)
type TransportAssignmentUpsertDTO struct {
	TransportAssignmentRouteID     string          `json:"transport_assignment_route_id" validate:"required,max=60"`
	TransportAssignmentMonthlyFare decimal.Decimal `json:"transport_assignment_monthly_fare" validate:"gte=0"`
	TransportAssignmentStatus      string          `json:"transport_assignment_status" validate:"omitempty,oneof=active inactive"`
}

type TransportAssignmentResponse struct {
	TransportAssignmentID          uuid.UUID       `json:"transport_assignment_id"`
	TransportAssignmentStudentID   uuid.UUID       `json:"transport_assignment_student_id"`
	TransportAssignmentRouteID     string          `json:"transport_assignment_route_id"`
	TransportAssignmentMonthlyFare decimal.Decimal `json:"transport_assignment_monthly_fare"`
	TransportAssignmentStatus      string          `json:"transport_assignment_status"`
	TransportAssignmentUpdatedAt   time.Time       `json:"transport_assignment_updated_at"`
}

func ToTransportAssignmentResponse(m model.TransportAssignment) TransportAssignmentResponse {
	return TransportAssignmentResponse{
		TransportAssignmentID:          m.TransportAssignmentID,
		TransportAssignmentStudentID:   m.TransportAssignmentStudentID,
		TransportAssignmentRouteID:     m.TransportAssignmentRouteID,
		TransportAssignmentMonthlyFare: m.TransportAssignmentMonthlyFare,
		TransportAssignmentStatus:      m.TransportAssignmentStatus,
		TransportAssignmentUpdatedAt:   m.TransportAssignmentUpdatedAt,
	}
}

func ToTransportAssignmentResponses(list []model.TransportAssignment) []TransportAssignmentResponse {
	out := make([]TransportAssignmentResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToTransportAssignmentResponse(v))
	}
	return out
}

// ApplyTransportAssignmentUpsert: isi m (baru atau existing) dari DTO.
func ApplyTransportAssignmentUpsert(m *model.TransportAssignment, studentID uuid.UUID, d TransportAssignmentUpsertDTO) {
	status := strings.ToLower(strings.TrimSpace(d.TransportAssignmentStatus))
	if status == "" {
		status = model.TransportStatusActive
	}
	m.TransportAssignmentStudentID = studentID
	m.TransportAssignmentRouteID = strings.TrimSpace(d.TransportAssignmentRouteID)
	m.TransportAssignmentMonthlyFare = d.TransportAssignmentMonthlyFare
	m.TransportAssignmentStatus = status
}
