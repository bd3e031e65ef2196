package advisor

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// ValuationFacts are the structured property facts behind an online valuation.
type ValuationFacts struct {
	Address      string
	Neighborhood string
	AreaM2       float64
	Rooms        int
	Condition    string
}

// PropertySummary is the catalog context handed to the chat assistant.
type PropertySummary struct {
	Title       string
	Price       int64
	Transaction string
	Address     string
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}
