package ports

import (
	"context"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// BoardInput asks for the calendar around Date at the given granularity.
type BoardInput struct {
	Date time.Time
	View calendar.Granularity
	// UserID restricts the board to one employee's assignments.
	UserID string
	// Scope keys the generation counter, typically the session id.
	Scope string
}

// Board is a fully grouped calendar page.
type Board struct {
	View        calendar.Granularity `json:"view"`
	Date        string               `json:"date"`
	Start       string               `json:"start"`
	End         string               `json:"end"`
	Generation  uint64               `json:"generation"`
	Days        []calendar.DayView   `json:"days"`
	Assignments []domain.Assignment  `json:"assignments"`
	// Users and Projects are only filled on the admin board.
	Users    []domain.User    `json:"users,omitempty"`
	Projects []domain.Project `json:"projects,omitempty"`
}

type CalendarService interface {
	AdminBoard(ctx context.Context, in BoardInput) (*Board, error)
	EmployeeBoard(ctx context.Context, in BoardInput) (*Board, error)
}

// AdminStats is the admin landing page summary.
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	PresentUsers     int64 `json:"present_users"`
	AbsentUsers      int64 `json:"absent_users"`
	ActiveProjects   int64 `json:"active_projects"`
	TodayAssignments int64 `json:"today_assignments"`
}

// EmployeeDashboard is what an employee sees after signing in.
type EmployeeDashboard struct {
	Role     domain.Role         `json:"role"`
	Today    []domain.Assignment `json:"today"`
	Week     []domain.Assignment `json:"week"`
	Month    []domain.Assignment `json:"month"`
	Recent   []domain.Assignment `json:"recent"`
	Projects []domain.Project    `json:"projects"`
}

type DashboardService interface {
	AdminStats(ctx context.Context, today time.Time) (*AdminStats, error)
	Employee(ctx context.Context, userID string, today time.Time) (*EmployeeDashboard, error)
}
