package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type stubAssignmentService struct {
	createFn func(ctx context.Context, in ports.CreateAssignmentInput) (*domain.Assignment, error)
	batchFn  func(ctx context.Context, in ports.BatchAssignmentInput) ([]domain.Assignment, error)
	moveFn   func(ctx context.Context, userID string, target ports.MoveTarget, actorID string) (*ports.MoveResult, error)
	deleted  []string
}

func (s *stubAssignmentService) Create(ctx context.Context, in ports.CreateAssignmentInput) (*domain.Assignment, error) {
	return s.createFn(ctx, in)
}

func (s *stubAssignmentService) CreateBatch(ctx context.Context, in ports.BatchAssignmentInput) ([]domain.Assignment, error) {
	return s.batchFn(ctx, in)
}

func (s *stubAssignmentService) MoveUserToProject(ctx context.Context, userID string, target ports.MoveTarget, actorID string) (*ports.MoveResult, error) {
	return s.moveFn(ctx, userID, target, actorID)
}

func (s *stubAssignmentService) UpdateNotes(_ context.Context, id, notes, _ string) (*domain.Assignment, error) {
	return &domain.Assignment{ID: id, Notes: notes}, nil
}

func (s *stubAssignmentService) Delete(_ context.Context, id, _ string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestAssignmentHandler_Create(t *testing.T) {
	stub := &stubAssignmentService{
		createFn: func(_ context.Context, in ports.CreateAssignmentInput) (*domain.Assignment, error) {
			if in.UserID != "u-1" || in.ProjectID != "p-1" || in.Date != "2024-03-10" || in.ActorID != admin.userID {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Assignment{ID: "a-1", UserID: in.UserID, ProjectID: in.ProjectID, Date: in.Date}, nil
		},
	}
	h := NewAssignmentHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/assignments",
		`{"user_id":"u-1","project_id":"p-1","assignment_date":"2024-03-10"}`, admin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)

	var a domain.Assignment
	decode(t, rec, &a)
	if a.ID != "a-1" || a.Date != "2024-03-10" {
		t.Fatalf("unexpected assignment: %+v", a)
	}
}

func TestAssignmentHandler_Create_RejectsMalformedDate(t *testing.T) {
	h := NewAssignmentHandler(&stubAssignmentService{})

	c, _ := newContext(http.MethodPost, "/v1/assignments",
		`{"user_id":"u-1","project_id":"p-1","assignment_date":"10/03/2024"}`, admin)
	wantHTTPError(t, h.Create(c), http.StatusUnprocessableEntity)
}

func TestAssignmentHandler_Create_Duplicate(t *testing.T) {
	stub := &stubAssignmentService{
		createFn: func(context.Context, ports.CreateAssignmentInput) (*domain.Assignment, error) {
			return nil, domain.ErrDuplicateAssignment
		},
	}
	h := NewAssignmentHandler(stub)

	c, _ := newContext(http.MethodPost, "/v1/assignments",
		`{"user_id":"u-1","project_id":"p-1","assignment_date":"2024-03-10"}`, admin)
	if err := h.Create(c); !errors.Is(err, domain.ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}
}

func TestAssignmentHandler_CreateBatch_EmptySelectionReachesService(t *testing.T) {
	stub := &stubAssignmentService{
		batchFn: func(_ context.Context, in ports.BatchAssignmentInput) ([]domain.Assignment, error) {
			if len(in.UserIDs) != 0 {
				t.Fatalf("unexpected users: %v", in.UserIDs)
			}
			return nil, domain.ErrEmptySelection
		},
	}
	h := NewAssignmentHandler(stub)

	c, _ := newContext(http.MethodPost, "/v1/assignments/batch",
		`{"project_id":"p-1","assignment_date":"2024-03-10","user_ids":[]}`, admin)
	if err := h.CreateBatch(c); !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestAssignmentHandler_CreateBatch(t *testing.T) {
	stub := &stubAssignmentService{
		batchFn: func(_ context.Context, in ports.BatchAssignmentInput) ([]domain.Assignment, error) {
			out := make([]domain.Assignment, 0, len(in.UserIDs))
			for _, id := range in.UserIDs {
				out = append(out, domain.Assignment{UserID: id, ProjectID: in.ProjectID, Date: in.Date})
			}
			return out, nil
		},
	}
	h := NewAssignmentHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/assignments/batch",
		`{"project_id":"p-1","assignment_date":"2024-03-10","user_ids":["u-1","u-2"]}`, admin)
	if err := h.CreateBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)

	var resp batchAssignmentResponse
	decode(t, rec, &resp)
	if resp.Count != 2 || len(resp.Assignments) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAssignmentHandler_Move(t *testing.T) {
	cases := []struct {
		name    string
		result  ports.MoveResult
		status  int
		created bool
	}{
		{"creates", ports.MoveResult{Created: true, Assignment: &domain.Assignment{ID: "a-9"}, Message: "user added to project"}, http.StatusCreated, true},
		{"already there", ports.MoveResult{Created: false, Message: domain.ErrAlreadyAssigned.Error()}, http.StatusOK, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAssignmentService{
				moveFn: func(_ context.Context, userID string, target ports.MoveTarget, actorID string) (*ports.MoveResult, error) {
					if userID != "u-1" || target.ProjectID != "p-2" || target.Date != "2024-03-11" || actorID != admin.userID {
						t.Fatalf("unexpected command: %s %+v %s", userID, target, actorID)
					}
					res := tc.result
					return &res, nil
				},
			}
			h := NewAssignmentHandler(stub)

			c, rec := newContext(http.MethodPost, "/v1/assignments/move",
				`{"user_id":"u-1","project_id":"p-2","assignment_date":"2024-03-11"}`, admin)
			if err := h.Move(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			wantStatus(t, rec, tc.status)

			var resp moveResponse
			decode(t, rec, &resp)
			if resp.Created != tc.created || resp.Message != tc.result.Message {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestAssignmentHandler_UpdateAndDelete(t *testing.T) {
	stub := &stubAssignmentService{}
	h := NewAssignmentHandler(stub)

	c, rec := newContext(http.MethodPatch, "/v1/assignments/a-1", `{"notes":"bring the crane"}`, admin)
	if err := h.Update(withParam(c, "id", "a-1")); err != nil {
		t.Fatalf("update error: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)
	var a domain.Assignment
	decode(t, rec, &a)
	if a.ID != "a-1" || a.Notes != "bring the crane" {
		t.Fatalf("unexpected assignment: %+v", a)
	}

	c, rec = newContext(http.MethodDelete, "/v1/assignments/a-1", "", admin)
	if err := h.Delete(withParam(c, "id", "a-1")); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	wantStatus(t, rec, http.StatusNoContent)
	if len(stub.deleted) != 1 || stub.deleted[0] != "a-1" {
		t.Fatalf("deleted %v", stub.deleted)
	}
}
