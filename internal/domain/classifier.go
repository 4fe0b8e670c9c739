package domain

import "context"

// Sample is the input to a classification port. Text models read Text;
// the profile-action model reads Features (see [EmergencyProfile.FeatureVector]).
type Sample struct {
	Text     string
	Features []float64
}

// Prediction is a single classification result. Distribution values sum to 1
// within floating tolerance; Confidence is the probability of Label.
type Prediction struct {
	Label        string             `json:"label"`
	Confidence   float64            `json:"confidence"`
	Distribution map[string]float64 `json:"distribution,omitempty"`
}

// Classifier is the narrow port behind every prediction model. Three
// instances exist (intent, emergency type, profile action) with different
// label vocabularies and identical contracts, so the decision logic stays
// oblivious to how predictions are produced. Unavailability is signaled
// with [ErrClassifierUnavailable], never a panic.
type Classifier interface {
	Classify(ctx context.Context, sample Sample) (Prediction, error)
}
