package dtos

// RecordEventRequest appends one interaction to the analytics ledger
type RecordEventRequest struct {
	EventType string `json:"event_type"`
	UserID    string `json:"user_id"`
	Referrer  string `json:"referrer"`
}

// BeginRunRequest opens a collection run
type BeginRunRequest struct {
	RepositoryID uint `json:"repository_id"`
}

// CompleteRunRequest closes a collection run
type CompleteRunRequest struct {
	CommitsCollected int    `json:"commits_collected"`
	Success          bool   `json:"success"`
	ErrorMessage     string `json:"error_message"`
}
