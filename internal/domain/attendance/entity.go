package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type Status string

const (
	StatusPresent      Status = "present"
	StatusLate         Status = "late"
	StatusAbsent       Status = "absent"
	StatusHalfDay      Status = "half-day"
	StatusWorkFromHome Status = "work-from-home"
	StatusOnLeave      Status = "on-leave"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusWorkFromHome),
	string(StatusOnLeave),
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

var ApprovalStatusValues = []string{
	string(ApprovalPending),
	string(ApprovalApproved),
	string(ApprovalRejected),
}

// State is the position of a day record in the clock/break lifecycle.
type State string

const (
	StateNoRecord   State = "no_record"
	StateClockedIn  State = "clocked_in"
	StateOnBreak    State = "on_break"
	StateClockedOut State = "clocked_out"
)

type Location struct {
	Latitude  float64
	Longitude float64
	Address   string
}

type DeviceInfo struct {
	DeviceID   string
	DeviceType string
	IPAddress  string
}

type ClockEvent struct {
	Time     timeutil.TimeOfDay
	Location Location
	Device   DeviceInfo
	Photo    string
	Notes    string
}

type BreakPoint struct {
	Time     timeutil.TimeOfDay
	Location Location
}

type Break struct {
	Start           BreakPoint
	End             *BreakPoint
	DurationMinutes *float64
	Reason          string
}

// IsOpen reports whether the break has not ended yet.
func (b Break) IsOpen() bool {
	return b.End == nil
}

// Key identifies the single record an employee may have for a calendar date.
type Key struct {
	EmployeeID string
	Date       time.Time
}

func NewKey(employeeID string, date time.Time) Key {
	return Key{EmployeeID: employeeID, Date: timeutil.DateOf(date)}
}

func (k Key) String() string {
	return k.EmployeeID + ":" + k.Date.Format(timeutil.DateLayout)
}

// Record is one employee's attendance for one calendar date.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time

	ClockIn  *ClockEvent
	ClockOut *ClockEvent
	Breaks   []Break

	Status               Status
	WorkingMinutes       float64
	BreakMinutes         float64
	ActualWorkingMinutes float64
	OvertimeMinutes      float64

	ApprovalStatus ApprovalStatus
	ApprovedBy     *string
	ApprovedAt     *time.Time
	ApprovalNotes  *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord returns an empty record for key, not yet clocked in.
func NewRecord(key Key) Record {
	return Record{
		EmployeeID:     key.EmployeeID,
		Date:           key.Date,
		Breaks:         []Break{},
		ApprovalStatus: ApprovalPending,
	}
}

func (r *Record) Key() Key {
	return NewKey(r.EmployeeID, r.Date)
}

// State derives the lifecycle position from the recorded events.
func (r *Record) State() State {
	switch {
	case r == nil || r.ClockIn == nil:
		return StateNoRecord
	case r.ClockOut != nil:
		return StateClockedOut
	}
	if _, open := r.OpenBreak(); open {
		return StateOnBreak
	}
	return StateClockedIn
}

// OpenBreak returns the index of the break that has not ended.
func (r *Record) OpenBreak() (int, bool) {
	for i := range r.Breaks {
		if r.Breaks[i].IsOpen() {
			return i, true
		}
	}
	return -1, false
}

// RecordClockIn records the first arrival of the day. The status is late when the
// arrival is strictly after shiftStart.
func (r *Record) RecordClockIn(ev ClockEvent, shiftStart timeutil.TimeOfDay) error {
	if r.ClockIn != nil {
		return ErrAlreadyClockedIn
	}

	r.ClockIn = &ev
	if timeutil.IsAfter(ev.Time, shiftStart) {
		r.Status = StatusLate
	} else {
		r.Status = StatusPresent
	}
	return nil
}

// RecordClockOut closes the day and computes the minute totals. A break still open
// at clock-out contributes nothing to BreakMinutes.
func (r *Record) RecordClockOut(ev ClockEvent, standardMinutes float64) error {
	if r.ClockIn == nil {
		return ErrNotClockedIn
	}
	if r.ClockOut != nil {
		return ErrAlreadyClockedOut
	}

	working := timeutil.MinutesBetween(r.ClockIn.Time, ev.Time)
	var breaks float64
	for _, b := range r.Breaks {
		if b.DurationMinutes != nil {
			breaks += *b.DurationMinutes
		}
	}
	actual := working - breaks
	if actual < 0 {
		actual = 0
	}

	r.ClockOut = &ev
	r.WorkingMinutes = timeutil.Round2(working)
	r.BreakMinutes = timeutil.Round2(breaks)
	r.ActualWorkingMinutes = timeutil.Round2(actual)
	r.OvertimeMinutes = timeutil.Round2(max(0, actual-standardMinutes))
	return nil
}

// StartBreak opens a break. Only one break may be open at a time.
func (r *Record) StartBreak(at BreakPoint, reason string) error {
	if r.ClockIn == nil {
		return ErrNotClockedIn
	}
	if r.ClockOut != nil {
		return ErrAlreadyClockedOut
	}
	if _, open := r.OpenBreak(); open {
		return ErrBreakAlreadyOpen
	}

	r.Breaks = append(r.Breaks, Break{Start: at, Reason: reason})
	return nil
}

// EndBreak closes the open break and returns its duration in minutes.
func (r *Record) EndBreak(at BreakPoint) (float64, error) {
	if r.ClockOut != nil {
		return 0, ErrAlreadyClockedOut
	}
	i, open := r.OpenBreak()
	if !open {
		return 0, ErrNoActiveBreak
	}

	duration := timeutil.Round2(timeutil.MinutesBetween(r.Breaks[i].Start.Time, at.Time))
	r.Breaks[i].End = &at
	r.Breaks[i].DurationMinutes = &duration
	return duration, nil
}

// Review sets the approval decision. It is independent of Status.
func (r *Record) Review(status ApprovalStatus, reviewerID string, notes *string, at time.Time) {
	r.ApprovalStatus = status
	r.ApprovedBy = &reviewerID
	r.ApprovedAt = &at
	r.ApprovalNotes = notes
}

// Summary aggregates a set of day records.
type Summary struct {
	TotalDays             int
	ByStatus              map[Status]int
	TotalWorkingMinutes   float64
	TotalOvertimeMinutes  float64
	AverageWorkingMinutes float64
}

// Summarize counts records by status and totals their minutes. Working
// minutes are net of breaks. The average is taken over all records and is 0
// when there are none.
func Summarize(records []Record) Summary {
	s := Summary{ByStatus: make(map[Status]int, len(StatusValues))}
	for _, v := range StatusValues {
		s.ByStatus[Status(v)] = 0
	}

	for _, r := range records {
		s.TotalDays++
		if r.Status != "" {
			s.ByStatus[r.Status]++
		}
		s.TotalWorkingMinutes += r.ActualWorkingMinutes
		s.TotalOvertimeMinutes += r.OvertimeMinutes
	}

	s.TotalWorkingMinutes = timeutil.Round2(s.TotalWorkingMinutes)
	s.TotalOvertimeMinutes = timeutil.Round2(s.TotalOvertimeMinutes)
	if s.TotalDays > 0 {
		s.AverageWorkingMinutes = timeutil.Round2(s.TotalWorkingMinutes / float64(s.TotalDays))
	}
	return s
}
