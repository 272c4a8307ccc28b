package dto

type ChatRequest struct {
	ChatKey string `json:"chatKey"`
	Message string `json:"message"`
}

// ChatResult is the outcome of one user turn.
type ChatResult struct {
	Response      string               `json:"response"`
	FunctionCalls int                  `json:"functionCalls"`
	Sources       []SearchResultRecord `json:"sources"`
}

// SyncReport summarises one index sync run.
type SyncReport struct {
	Read    int `json:"read"`
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}
