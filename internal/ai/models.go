package ai

// DraftedTip captures one structured tip suggestion from the AI model.
type DraftedTip struct {
	// Text is the tip copy, phrased for end users (one or two sentences).
	Text string `json:"text"`

	// Rationale is a short note for the curator explaining why the tip fits
	// the requested tag combination. Never shown to end users.
	Rationale string `json:"rationale,omitempty"`
}
