package entity

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type RenderJob struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	User       string    `json:"user,omitempty"`
	Error      string    `json:"error,omitempty"`
	ResultPath string    `json:"result_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type RenderTask struct {
	JobID  string `json:"job_id"`
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Author string `json:"author,omitempty"`
	Filter string `json:"filter,omitempty"`
	Square bool   `json:"square,omitempty"`
	User   string `json:"user,omitempty"`
}

type EnqueueResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type JobResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PackEntry struct {
	JobID   string    `json:"job_id"`
	Kind    string    `json:"kind"`
	AddedAt time.Time `json:"added_at"`
}

type UserStats struct {
	User            string `json:"user"`
	MemesCreated    int64  `json:"memes_created"`
	QuotesCreated   int64  `json:"quotes_created"`
	FiltersApplied  int64  `json:"filters_applied"`
	StickersCreated int64  `json:"stickers_created"`
}
