package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionAudit records the outcome of one relay call. It never holds
// the forwarded body or the credential.
type SubmissionAudit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID      string             `bson:"requestId" json:"requestId"`
	Method         string             `bson:"method" json:"method"`
	Path           string             `bson:"path" json:"path"`
	DoctorID       string             `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	Outcome        string             `bson:"outcome" json:"outcome"`
	UpstreamStatus int                `bson:"upstreamStatus" json:"upstreamStatus"`
	DurationMillis int64              `bson:"durationMillis" json:"durationMillis"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// DoctorRegistered is published after the upstream accepted a registration.
type DoctorRegistered struct {
	Event        string    `json:"event"`
	RequestID    string    `json:"requestId"`
	DoctorID     string    `json:"doctorId"`
	Department   string    `json:"department,omitempty"`
	Status       int       `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}
