package domain

import "time"

// ProjectStatus is the lifecycle state of a construction site.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectFinished   ProjectStatus = "finished"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectInProgress, ProjectFinished, ProjectCancelled:
		return true
	}
	return false
}

// ProjectColors is the palette offered when creating a project. The first
// entry is used when no color is given.
var ProjectColors = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#06B6D4",
	"#F97316",
	"#84CC16",
}

// DefaultProjectColor returns the first palette entry.
func DefaultProjectColor() string {
	return ProjectColors[0]
}

// Project is a construction site employees get assigned to.
// StartDate and EndDate are optional YYYY-MM-DD strings.
type Project struct {
	ID             string        `json:"id" bson:"_id"`
	Name           string        `json:"name" bson:"name"`
	Description    string        `json:"description,omitempty" bson:"description,omitempty"`
	Location       string        `json:"location,omitempty" bson:"location,omitempty"`
	Status         ProjectStatus `json:"status" bson:"status"`
	Color          string        `json:"color" bson:"color"`
	StartDate      string        `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate        string        `json:"end_date,omitempty" bson:"end_date,omitempty"`
	WazeLink       string        `json:"waze_link,omitempty" bson:"waze_link,omitempty"`
	GoogleMapsLink string        `json:"google_maps_link,omitempty" bson:"google_maps_link,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}
