package models

type HuggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

// HuggingFaceCandidate is one ranked label from the binary sst-2 classifier.
// The service only ever emits POSITIVE and NEGATIVE.
type HuggingFaceCandidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HuggingFaceResponse holds one candidate list per input text.
type HuggingFaceResponse [][]HuggingFaceCandidate
