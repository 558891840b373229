package handler

import (
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signUpRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Role      string `json:"role"       validate:"omitempty,oneof=worker supervisor admin"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type sessionResponse struct {
	SessionID string       `json:"session_id"`
	User      *domain.User `json:"user"`
}

// --- Users ---

type listUsersQuery struct {
	Search string `query:"search"`
	Role   string `query:"role"   validate:"omitempty,oneof=worker supervisor admin"`
	Status string `query:"status" validate:"omitempty,oneof=present absent"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1"`
	Role      *string `json:"role"       validate:"omitempty,oneof=worker supervisor admin"`
	Status    *string `json:"status"     validate:"omitempty,oneof=present absent"`
}

type availableUsersQuery struct {
	Date            string `query:"date"`
	Search          string `query:"search"`
	Role            string `query:"role"             validate:"omitempty,oneof=all worker supervisor admin"`
	Status          string `query:"status"           validate:"omitempty,oneof=all present absent"`
	ExcludeAssigned bool   `query:"exclude_assigned"`
}

// --- Projects ---

type listProjectsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending in_progress finished cancelled"`
}

type createProjectRequest struct {
	Name           string `json:"name"             validate:"required"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Status         string `json:"status"           validate:"omitempty,oneof=pending in_progress finished cancelled"`
	Color          string `json:"color"            validate:"omitempty,hexcolor"`
	StartDate      string `json:"start_date"       validate:"omitempty,datetime=2006-01-02"`
	EndDate        string `json:"end_date"         validate:"omitempty,datetime=2006-01-02"`
	WazeLink       string `json:"waze_link"        validate:"omitempty,url"`
	GoogleMapsLink string `json:"google_maps_link" validate:"omitempty,url"`
}

type updateProjectRequest struct {
	Name           *string `json:"name"             validate:"omitempty,min=1"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	Status         *string `json:"status"           validate:"omitempty,oneof=pending in_progress finished cancelled"`
	Color          *string `json:"color"            validate:"omitempty,hexcolor"`
	StartDate      *string `json:"start_date"       validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string `json:"end_date"         validate:"omitempty,datetime=2006-01-02"`
	WazeLink       *string `json:"waze_link"        validate:"omitempty,url"`
	GoogleMapsLink *string `json:"google_maps_link" validate:"omitempty,url"`
}

// --- Assignments ---

type createAssignmentRequest struct {
	UserID    string `json:"user_id"         validate:"required"`
	ProjectID string `json:"project_id"      validate:"required"`
	Date      string `json:"assignment_date" validate:"required,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

// UserIDs may be empty here; the service rejects an empty selection with
// its own error.
type batchAssignmentRequest struct {
	ProjectID string   `json:"project_id"      validate:"required"`
	Date      string   `json:"assignment_date" validate:"required,datetime=2006-01-02"`
	UserIDs   []string `json:"user_ids"        validate:"dive,required"`
	Notes     string   `json:"notes"`
}

type moveRequest struct {
	UserID    string `json:"user_id"         validate:"required"`
	ProjectID string `json:"project_id"      validate:"required"`
	Date      string `json:"assignment_date" validate:"required,datetime=2006-01-02"`
}

type moveResponse struct {
	Created    bool               `json:"created"`
	Assignment *domain.Assignment `json:"assignment,omitempty"`
	Message    string             `json:"message"`
}

type updateAssignmentRequest struct {
	Notes string `json:"notes"`
}

type batchAssignmentResponse struct {
	Count       int                 `json:"count"`
	Assignments []domain.Assignment `json:"assignments"`
}

// --- Calendar ---

type boardQuery struct {
	Date string `query:"date"`
	View string `query:"view"`
}

type navigateQuery struct {
	Date      string `query:"date"`
	View      string `query:"view"`
	Direction string `query:"direction" validate:"required"`
}

type navigateResponse struct {
	Date  string `json:"date"`
	View  string `json:"view"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// --- Dashboards / activity ---

type dashboardQuery struct {
	Date string `query:"date"`
}

type activityQuery struct {
	Limit int64 `query:"limit" validate:"omitempty,min=1,max=200"`
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items, Total: len(items)}
}
