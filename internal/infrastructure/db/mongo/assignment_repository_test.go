package mongo

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

func TestAssignmentFilter(t *testing.T) {
	f := assignmentFilter(portsFilter("2024-03-10", "2024-03-16", "u-1", ""))
	date, ok := f["assignment_date"].(bson.M)
	if !ok {
		t.Fatalf("missing date bounds: %v", f)
	}
	if date["$gte"] != "2024-03-10" || date["$lte"] != "2024-03-16" {
		t.Fatalf("unexpected bounds: %v", date)
	}
	if f["user_id"] != "u-1" {
		t.Fatalf("missing user filter: %v", f)
	}
	if _, ok := f["project_id"]; ok {
		t.Fatalf("empty project id must not filter: %v", f)
	}

	if got := assignmentFilter(portsFilter("", "", "", "")); len(got) != 0 {
		t.Fatalf("empty filter should match everything, got %v", got)
	}
}

func TestExpandPipeline_LimitsBeforeLookup(t *testing.T) {
	p := expandPipeline(assignmentFilter(portsFilter("2024-03-01", "", "", "")), nil, 10)
	var stages []string
	for _, stage := range p {
		stages = append(stages, stage[0].Key)
	}
	want := []string{"$match", "$sort", "$limit", "$lookup", "$unwind", "$lookup", "$unwind", "$project"}
	if fmt.Sprint(stages) != fmt.Sprint(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
}

func portsFilter(from, to, userID, projectID string) ports.ListAssignmentsFilter {
	return ports.ListAssignmentsFilter{From: from, To: to, UserID: userID, ProjectID: projectID}
}
