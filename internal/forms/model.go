package forms

import "time"

// Submission statuses. Transitions past pending are not implemented; a
// submission is immutable once created.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// FileMetadata describes an uploaded file as returned by the upload mock.
type FileMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FormData is the composite of the four step sections. Sections hold raw
// payloads: auto-save is validation-free, so whatever the client sent is
// stored as-is and only checked by the step validators.
type FormData struct {
	Personal     map[string]any   `json:"personal,omitempty"`
	Address      map[string]any   `json:"address,omitempty"`
	Documents    []map[string]any `json:"documents,omitempty"`
	Confirmation map[string]any   `json:"confirmation,omitempty"`
}

// Draft is an in-progress form instance tied to one user. CurrentStep reflects
// the last saved step, not monotonic progress.
type Draft struct {
	ID                 string    `json:"id"`
	UserID             int64     `json:"userId"`
	CurrentStep        int       `json:"currentStep"`
	ProgressPercentage int       `json:"progressPercentage"`
	Data               FormData  `json:"data"`
	LastSaved          time.Time `json:"lastSaved"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Submission is the immutable result of completing a draft.
type Submission struct {
	ID             string    `json:"id"`
	ProtocolNumber string    `json:"protocolNumber"`
	UserID         int64     `json:"userId"`
	Data           FormData  `json:"data"`
	SubmittedAt    time.Time `json:"submittedAt"`
	Status         string    `json:"status"`
}
