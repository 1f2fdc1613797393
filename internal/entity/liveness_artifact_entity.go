package entity

import "time"

// LivenessArtifact references the recorded liveness video of a session.
// At most one exists per session; a re-upload replaces the key and
// timestamp in place.
type LivenessArtifact struct {
	Id         uint
	SessionId  uint
	VideoKey   string
	UploadedAt time.Time
}
