package domain

// FaultState is the fault-injection configuration consulted by the
// request gateway. There is a single process-wide value; last write wins
// and no history is kept. Range validation happens at the HTTP boundary
// before a value is accepted.
type FaultState struct {
	// LatencyMs delays forwarded API requests, 0-2000.
	LatencyMs int `json:"latencyMs"`

	// RateLimit rejects every API request with a rate-limit error while set.
	RateLimit bool `json:"rateLimit"`

	// ErrorRate is the percent probability, 0-100, that an API request
	// fails with an injected server error.
	ErrorRate int `json:"errorRate"`
}
