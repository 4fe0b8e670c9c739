package classify

import (
	"context"
	"fmt"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// Profile-action labels, ordered from most to least urgent.
const (
	ActionCriticalAlert = "alerta_medica_critica"
	ActionPreventive    = "seguimiento_preventivo"
	ActionStandard      = "atencion_estandar"
)

// Feature indexes in the profile vector (see
// [domain.EmergencyProfile.FeatureVector]).
const (
	featureAge = iota
	featureAllergies
	featureChronic
	featureMedication
)

// ProfileClassifier maps a profile feature vector to a care action with
// fixed decision rules over age and the medical flags.
type ProfileClassifier struct{}

// NewProfileClassifier returns the rule-based profile-action model.
func NewProfileClassifier() *ProfileClassifier {
	return &ProfileClassifier{}
}

// Classify picks the care action for the sample's feature vector.
func (c *ProfileClassifier) Classify(ctx context.Context, sample domain.Sample) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, err
	}

	want := 4 + len(domain.BloodTypes)
	if len(sample.Features) != want {
		return domain.Prediction{}, fmt.Errorf("profile features: got %d values, want %d", len(sample.Features), want)
	}

	age := sample.Features[featureAge]
	chronic := sample.Features[featureChronic] > 0
	medication := sample.Features[featureMedication] > 0
	allergies := sample.Features[featureAllergies] > 0

	switch {
	case age >= 75, chronic && medication, age >= 60 && chronic:
		return domain.Prediction{Label: ActionCriticalAlert, Confidence: 0.9}, nil
	case age >= 60, chronic, medication, allergies:
		return domain.Prediction{Label: ActionPreventive, Confidence: 0.75}, nil
	default:
		return domain.Prediction{Label: ActionStandard, Confidence: 0.8}, nil
	}
}
