package models

// AskRequest for POST /api/v1/ask
type AskRequest struct {
	Question string `json:"question"`
	Timeout  int    `json:"timeout"` // seconds
	Trace    bool   `json:"trace"`   // include the step-by-step trajectory in the response
}

func (r *AskRequest) SetDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 120
	}
	if r.Timeout < 5 {
		r.Timeout = 5
	}
	if r.Timeout > 600 {
		r.Timeout = 600
	}
}

// CalculateRequest for POST /api/v1/calculate
type CalculateRequest struct {
	Expression string `json:"expression"`
}
