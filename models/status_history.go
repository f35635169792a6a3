package models

import "time"

// ApplicationStatusHistory tracks historical status changes for applications.
type ApplicationStatusHistory struct {
	HistoryID     int       `gorm:"primaryKey;autoIncrement;column:history_id" json:"history_id"`
	ApplicationID int       `gorm:"column:application_id" json:"application_id"`
	TrackingID    string    `gorm:"column:tracking_id;size:16;index" json:"tracking_id"`
	OldStatus     *string   `gorm:"column:old_status;size:32" json:"old_status"`
	NewStatus     string    `gorm:"column:new_status;size:32" json:"new_status"`
	ChangedBy     *string   `gorm:"column:changed_by" json:"changed_by"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for ApplicationStatusHistory.
func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}
