package models

import "time"

type Task struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string    `json:"title" gorm:"size:100;not null"`
	Description    string    `json:"description" gorm:"size:500;not null"`
	Cost           float64   `json:"cost" gorm:"not null"`
	HoursEstimated float64   `json:"hoursEstimated" gorm:"not null"`
	Completed      bool      `json:"completed" gorm:"not null;default:false"`
	OwnerID        string    `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TaskOwner is the denormalized owner summary attached to admin task
// listings.
type TaskOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AdminTask struct {
	Task
	Owner TaskOwner `json:"owner"`
}

type TaskStats struct {
	TotalTasks     int64   `json:"totalTasks"`
	TotalCost      float64 `json:"totalCost"`
	TotalHours     float64 `json:"totalHours"`
	CompletedTasks int64   `json:"completedTasks"`
}
