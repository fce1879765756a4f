package domain

// ProcessingContext describes the request-level circumstances of a processing
// call. It is caller-owned and read-only to the engine: country drives law
// resolution, action drives minimization, and the remaining fields feed
// consent evidence.
type ProcessingContext struct {
	Country      string          `json:"country,omitempty"`
	Action       string          `json:"action,omitempty"`
	IPAddress    string          `json:"ipAddress,omitempty"`
	UserAgent    string          `json:"userAgent,omitempty"`
	ConsentFlags map[string]bool `json:"consentFlags,omitempty"`
}
