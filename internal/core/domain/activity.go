package domain

import "time"

// ActivityKind names an auditable change.
type ActivityKind string

const (
	ActivityAssignmentCreated ActivityKind = "assignment.created"
	ActivityAssignmentUpdated ActivityKind = "assignment.updated"
	ActivityAssignmentDeleted ActivityKind = "assignment.deleted"
	ActivityProjectCreated    ActivityKind = "project.created"
	ActivityProjectUpdated    ActivityKind = "project.updated"
	ActivityProjectDeleted    ActivityKind = "project.deleted"
	ActivityUserCreated       ActivityKind = "user.created"
	ActivityUserUpdated       ActivityKind = "user.updated"
	ActivityUserDeleted       ActivityKind = "user.deleted"
	ActivitySignedIn          ActivityKind = "session.signed_in"
	ActivitySignedOut         ActivityKind = "session.signed_out"
)

// Activity is one entry of the audit trail.
type Activity struct {
	ID         string       `json:"id" bson:"_id"`
	Kind       ActivityKind `json:"kind" bson:"kind"`
	ActorID    string       `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	SubjectID  string       `json:"subject_id" bson:"subject_id"`
	Details    string       `json:"details,omitempty" bson:"details,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" bson:"occurred_at"`
}
