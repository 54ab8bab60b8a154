package gemini

// Wire types for the generateContent endpoint.

// PartDTO is a single content part.
type PartDTO struct {
	Text string `json:"text"`
}

// ContentDTO groups parts of one message.
type ContentDTO struct {
	Parts []PartDTO `json:"parts"`
}

// GenerationConfigDTO tunes the generation request.
type GenerationConfigDTO struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateRequestDTO is the request body.
type GenerateRequestDTO struct {
	Contents         []ContentDTO         `json:"contents"`
	GenerationConfig *GenerationConfigDTO `json:"generationConfig,omitempty"`
}

// CandidateDTO is one generated candidate.
type CandidateDTO struct {
	Content ContentDTO `json:"content"`
}

// GenerateResponseDTO is the response body.
type GenerateResponseDTO struct {
	Candidates []CandidateDTO `json:"candidates"`
}

// Text returns the first candidate's first part, or an empty string.
func (r GenerateResponseDTO) Text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// NewGenerateRequest builds a single-part text request.
func NewGenerateRequest(prompt string) GenerateRequestDTO {
	return GenerateRequestDTO{
		Contents: []ContentDTO{{Parts: []PartDTO{{Text: prompt}}}},
	}
}
