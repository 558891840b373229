package domain

import "time"

// Assignment schedules one user on one project for one calendar day.
// Date is always YYYY-MM-DD.
//
// User and Project are only populated on reads that expand the references.
type Assignment struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	ProjectID string    `json:"project_id" bson:"project_id"`
	Date      string    `json:"assignment_date" bson:"assignment_date"`
	Notes     string    `json:"notes" bson:"notes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	User    *User    `json:"user,omitempty" bson:"user,omitempty"`
	Project *Project `json:"project,omitempty" bson:"project,omitempty"`
}

// Bare returns a copy with the expanded references dropped.
func (a Assignment) Bare() Assignment {
	a.User = nil
	a.Project = nil
	return a
}
