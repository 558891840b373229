package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

func TestProjectService_Create_Defaults(t *testing.T) {
	f := newFixture(nil, nil)
	svc := f.projectService()

	p, err := svc.Create(context.Background(), ports.CreateProjectInput{Name: "  School renovation ", Location: "Lyon"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "School renovation" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
	if p.Status != domain.ProjectPending {
		t.Fatalf("expected pending, got %s", p.Status)
	}
	if p.Color != "#3B82F6" {
		t.Fatalf("expected default color, got %s", p.Color)
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc := newFixture(nil, nil).projectService()
	cases := map[string]ports.CreateProjectInput{
		"no name":      {Name: " "},
		"bad status":   {Name: "X", Status: "paused"},
		"bad date":     {Name: "X", StartDate: "2024-13-01"},
		"ends earlier": {Name: "X", StartDate: "2024-03-10", EndDate: "2024-03-01"},
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), in); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestProjectService_Update_Partial(t *testing.T) {
	f := newFixture(nil, sites())
	svc := f.projectService()

	status := domain.ProjectFinished
	link := "https://waze.com/ul?ll=45.76,4.83"
	p, err := svc.Update(context.Background(), "p1", ports.UpdateProjectInput{Status: &status, WazeLink: &link})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Status != domain.ProjectFinished || p.WazeLink != link || p.Name != "Tower" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if _, err := svc.Update(context.Background(), "nope", ports.UpdateProjectInput{}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete_Cascades(t *testing.T) {
	f := newFixture(crew(), sites())
	f.seed("u1", "p1", "2024-03-10")
	f.seed("u1", "p2", "2024-03-11")
	svc := f.projectService()

	if err := svc.Delete(context.Background(), "p1", "admin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.assignments.rows) != 1 || f.assignments.rows[0].ProjectID != "p2" {
		t.Fatalf("assignments not cascaded: %+v", f.assignments.rows)
	}
}

func TestProjectService_Accessible(t *testing.T) {
	f := newFixture(crew(), sites())
	f.seed("u1", "p1", "2024-03-10", "2024-03-12")
	f.seed("u1", "p2", "2024-03-11")
	svc := f.projectService()

	worker, err := svc.Accessible(context.Background(), "u1", domain.RoleWorker)
	if err != nil {
		t.Fatalf("accessible: %v", err)
	}
	if len(worker) != 2 || worker[0].Name != "Bridge" || worker[1].Name != "Tower" {
		t.Fatalf("unexpected worker projects: %+v", worker)
	}

	none, _ := svc.Accessible(context.Background(), "u3", domain.RoleWorker)
	if len(none) != 0 {
		t.Fatalf("expected no projects, got %+v", none)
	}

	all, _ := svc.Accessible(context.Background(), "u2", domain.RoleSupervisor)
	if len(all) != 3 || all[0].Name != "Annex" {
		t.Fatalf("supervisor should see every project by name: %+v", all)
	}
}
