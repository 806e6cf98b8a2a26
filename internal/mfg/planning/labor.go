package planning

import (
	"fmt"
	"math"
	"time"
)

// ScheduleWindow is one weekly recurring availability window, wall-clock,
// same-day only (no overnight shifts).
type ScheduleWindow struct {
	DayOfWeek int // 0=Sunday .. 6=Saturday
	Start     string
	End       string // "15:04" wall clock
	Recurring bool
	Active    bool
}

// WorkerAvailability is one worker's recurring weekly schedule.
type WorkerAvailability struct {
	WorkerID string
	Active   bool
	Windows  []ScheduleWindow
}

// LaborReport compares available worker-hours against required hours for a
// date range.
type LaborReport struct {
	Start          time.Time
	End            time.Time
	DaysInRange    int
	WorkerCount    int
	AvailableHours float64
	RequiredHours  float64
	Sufficient     bool
}

const clockLayout = "15:04"

// LaborCapacity converts recurring weekly schedules into available hours
// over [start, end) and compares them against requiredHours.
//
// Each worker contributes weeklyHours/7 per day in the range, a continuous
// approximation that sidesteps enumerating actual calendar weekdays.
// Malformed or inverted time windows are invalid input and fail the whole
// calculation.
func LaborCapacity(start, end time.Time, workers []WorkerAvailability, requiredHours float64) (*LaborReport, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("labor range end %s is not after start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))

	report := &LaborReport{
		Start:         start,
		End:           end,
		DaysInRange:   days,
		RequiredHours: requiredHours,
	}

	for _, w := range workers {
		if !w.Active {
			continue
		}
		weekly, err := weeklyHours(w.Windows)
		if err != nil {
			return nil, fmt.Errorf("worker %s: %w", w.WorkerID, err)
		}
		report.WorkerCount++
		report.AvailableHours += weekly / 7 * float64(days)
	}

	report.Sufficient = report.AvailableHours >= report.RequiredHours
	return report, nil
}

func weeklyHours(windows []ScheduleWindow) (float64, error) {
	var total float64
	for _, win := range windows {
		if !win.Active || !win.Recurring {
			continue
		}
		if win.DayOfWeek < 0 || win.DayOfWeek > 6 {
			return 0, fmt.Errorf("day of week %d out of range", win.DayOfWeek)
		}
		from, err := time.Parse(clockLayout, win.Start)
		if err != nil {
			return 0, fmt.Errorf("bad start time %q: %w", win.Start, err)
		}
		to, err := time.Parse(clockLayout, win.End)
		if err != nil {
			return 0, fmt.Errorf("bad end time %q: %w", win.End, err)
		}
		if !to.After(from) {
			return 0, fmt.Errorf("window %s-%s ends before it starts", win.Start, win.End)
		}
		total += to.Sub(from).Hours()
	}
	return total, nil
}
