package entity

import "time"

// Worker is a production-floor employee whose recurring schedule feeds the
// labor capacity calculation.
type Worker struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Schedules []WorkerSchedule `json:"schedules,omitempty" gorm:"foreignKey:WorkerID"`
}

func (Worker) TableName() string {
	return "workers"
}

// WorkerSchedule is one weekly recurring availability window. Times are
// wall-clock "15:04" strings; shifts do not span midnight.
type WorkerSchedule struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	WorkerID  string    `json:"worker_id" gorm:"size:32;not null;index"`
	DayOfWeek int       `json:"day_of_week" gorm:"not null"` // 0=Sunday .. 6=Saturday
	StartTime string    `json:"start_time" gorm:"size:5;not null"`
	EndTime   string    `json:"end_time" gorm:"size:5;not null"`
	Recurring bool      `json:"recurring" gorm:"not null;default:true"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

func (WorkerSchedule) TableName() string {
	return "worker_schedules"
}
