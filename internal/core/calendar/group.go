package calendar

import (
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// Member is one scheduled user inside a project group.
type Member struct {
	User       domain.User       `json:"user"`
	Assignment domain.Assignment `json:"assignment"`
}

// ProjectGroup gathers the users scheduled on one project for one day.
type ProjectGroup struct {
	Project domain.Project `json:"project"`
	Members []Member       `json:"members"`
}

// DayView is everything a calendar cell shows for one day.
type DayView struct {
	Date        string              `json:"date"`
	Assignments []domain.Assignment `json:"assignments"`
	Groups      []ProjectGroup      `json:"groups"`
}

// GroupByDay keeps the assignments dated on day, in input order.
func GroupByDay(assignments []domain.Assignment, day time.Time) []domain.Assignment {
	date := Format(day)
	out := make([]domain.Assignment, 0)
	for _, a := range assignments {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// GroupByProjectForDay groups the assignments dated on day by project.
// Groups come out in the order their project is first seen, and members keep
// arrival order within each group.
func GroupByProjectForDay(assignments []domain.Assignment, day time.Time) []ProjectGroup {
	date := Format(day)
	index := make(map[string]int)
	groups := make([]ProjectGroup, 0)

	for _, a := range assignments {
		if a.Date != date {
			continue
		}
		i, seen := index[a.ProjectID]
		if !seen {
			i = len(groups)
			index[a.ProjectID] = i
			groups = append(groups, ProjectGroup{Project: projectOf(a)})
		}
		groups[i].Members = append(groups[i].Members, Member{
			User:       userOf(a),
			Assignment: a.Bare(),
		})
	}
	return groups
}

// Fold builds one DayView per day of r. Assignments outside r are ignored.
func Fold(r Range, assignments []domain.Assignment) []DayView {
	days := r.Days()
	out := make([]DayView, 0, len(days))
	for _, d := range days {
		out = append(out, DayView{
			Date:        Format(d),
			Assignments: GroupByDay(assignments, d),
			Groups:      GroupByProjectForDay(assignments, d),
		})
	}
	return out
}

func projectOf(a domain.Assignment) domain.Project {
	if a.Project != nil {
		return *a.Project
	}
	return domain.Project{ID: a.ProjectID}
}

func userOf(a domain.Assignment) domain.User {
	if a.User != nil {
		return *a.User
	}
	return domain.User{ID: a.UserID}
}
