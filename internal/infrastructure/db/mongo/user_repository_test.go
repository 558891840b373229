package mongo

import (
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

func TestUserFilter_Search(t *testing.T) {
	f := userFilter(ports.ListUsersFilter{Search: "d'arc.", Role: domain.RoleWorker})

	if f["role"] != domain.RoleWorker {
		t.Fatalf("missing role filter: %v", f)
	}
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected three alternatives, got %v", f["$or"])
	}

	for i, field := range []string{"first_name", "last_name", "email"} {
		clause, ok := or[i].(bson.M)
		if !ok {
			t.Fatalf("clause %d: unexpected type %T", i, or[i])
		}
		re, ok := clause[field].(primitive.Regex)
		if !ok {
			t.Fatalf("clause %d: no regex on %s: %v", i, field, clause)
		}
		if re.Options != "i" {
			t.Errorf("%s: options = %q, want i", field, re.Options)
		}
		if re.Pattern != regexp.QuoteMeta("d'arc.") {
			t.Errorf("%s: pattern = %q, want the term quoted", field, re.Pattern)
		}
	}
}

func TestUserFilter_EmptySearchMatchesAll(t *testing.T) {
	if got := userFilter(ports.ListUsersFilter{}); len(got) != 0 {
		t.Fatalf("empty filter should match everything, got %v", got)
	}
}
