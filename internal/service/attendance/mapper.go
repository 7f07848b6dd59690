package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func mapLocation(l attendance.Location) attendance.LocationResponse {
	return attendance.LocationResponse{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Address:   l.Address,
	}
}

func mapClockEvent(ev *attendance.ClockEvent) *attendance.ClockEventResponse {
	if ev == nil {
		return nil
	}
	return &attendance.ClockEventResponse{
		Time:     ev.Time.String(),
		Location: mapLocation(ev.Location),
		DeviceInfo: attendance.DeviceInfoResponse{
			DeviceID:   ev.Device.DeviceID,
			DeviceType: ev.Device.DeviceType,
			IPAddress:  ev.Device.IPAddress,
		},
		Photo: ev.Photo,
		Notes: ev.Notes,
	}
}

func mapBreakPoint(p attendance.BreakPoint) attendance.BreakPointResponse {
	return attendance.BreakPointResponse{
		Time:     p.Time.String(),
		Location: mapLocation(p.Location),
	}
}

func mapRecordToResponse(rec attendance.Record) attendance.AttendanceResponse {
	breaks := make([]attendance.BreakResponse, 0, len(rec.Breaks))
	for _, b := range rec.Breaks {
		br := attendance.BreakResponse{
			BreakStart:      mapBreakPoint(b.Start),
			DurationMinutes: b.DurationMinutes,
			Reason:          b.Reason,
		}
		if b.End != nil {
			end := mapBreakPoint(*b.End)
			br.BreakEnd = &end
		}
		breaks = append(breaks, br)
	}

	return attendance.AttendanceResponse{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		Date:                 rec.Date.Format(timeutil.DateLayout),
		State:                string(rec.State()),
		ClockIn:              mapClockEvent(rec.ClockIn),
		ClockOut:             mapClockEvent(rec.ClockOut),
		Breaks:               breaks,
		Status:               string(rec.Status),
		WorkingMinutes:       rec.WorkingMinutes,
		BreakMinutes:         rec.BreakMinutes,
		ActualWorkingMinutes: rec.ActualWorkingMinutes,
		OvertimeMinutes:      rec.OvertimeMinutes,
		ApprovalStatus:       string(rec.ApprovalStatus),
		ApprovedBy:           rec.ApprovedBy,
		ApprovedAt:           timePtrToString(rec.ApprovedAt),
		ApprovalNotes:        rec.ApprovalNotes,
		CreatedAt:            rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            rec.UpdatedAt.Format(time.RFC3339),
	}
}

func mapRecords(records []attendance.Record) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, mapRecordToResponse(rec))
	}
	return out
}
