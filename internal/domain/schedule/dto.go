package schedule

import "time"

type ShiftResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Code                 string   `json:"code"`
	StartTime            string   `json:"start_time"`
	EndTime              string   `json:"end_time"`
	BreakDurationMinutes float64  `json:"break_duration_minutes"`
	WorkingDays          []string `json:"working_days"`
}

type WorkingHoursResponse struct {
	StartTime            string  `json:"start_time"`
	EndTime              string  `json:"end_time"`
	BreakDurationMinutes float64 `json:"break_duration_minutes"`
	StandardMinutes      float64 `json:"standard_minutes"`
}

type MyScheduleResponse struct {
	HasSchedule  bool                 `json:"has_schedule"`
	Shift        *ShiftResponse       `json:"shift,omitempty"`
	WorkingHours WorkingHoursResponse `json:"working_hours"`
}

func NewShiftResponse(s Shift) *ShiftResponse {
	days := make([]string, 0, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		days = append(days, dayName(d))
	}
	return &ShiftResponse{
		ID:                   s.ID,
		Name:                 s.Name,
		Code:                 s.Code,
		StartTime:            s.StartTime.String(),
		EndTime:              s.EndTime.String(),
		BreakDurationMinutes: s.BreakDurationMinutes,
		WorkingDays:          days,
	}
}

func NewWorkingHoursResponse(w WorkingHours) WorkingHoursResponse {
	return WorkingHoursResponse{
		StartTime:            w.StartTime.String(),
		EndTime:              w.EndTime.String(),
		BreakDurationMinutes: w.BreakDurationMinutes,
		StandardMinutes:      w.StandardMinutes,
	}
}

func dayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}
