package calendar

import (
	"strings"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// All disables a role or status filter.
const All = "all"

// UserFilter narrows the available-users panel.
type UserFilter struct {
	Search string // case-insensitive substring of first or last name; empty matches all
	Role   string // exact role, or All / empty
	Status string // exact presence status, or All / empty
	// ExcludeAssignedOn drops users already scheduled on that day.
	ExcludeAssignedOn *time.Time
}

// FilterAvailableUsers applies f to users. assignments is only consulted when
// f.ExcludeAssignedOn is set. Input order is preserved.
func FilterAvailableUsers(users []domain.User, assignments []domain.Assignment, f UserFilter) []domain.User {
	search := strings.ToLower(f.Search)

	var busy map[string]struct{}
	if f.ExcludeAssignedOn != nil {
		busy = make(map[string]struct{})
		for _, a := range GroupByDay(assignments, *f.ExcludeAssignedOn) {
			busy[a.UserID] = struct{}{}
		}
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) {
			continue
		}
		if !matches(f.Role, string(u.Role)) || !matches(f.Status, string(u.Status)) {
			continue
		}
		if _, ok := busy[u.ID]; ok {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}
