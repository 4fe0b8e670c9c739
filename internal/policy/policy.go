// Package policy loads and validates the static decision-policy document:
// the rule table that maps classifier outputs to user-facing actions,
// responses, and target facility types. The document is loaded once at
// startup and read-only for the process lifetime; hot reloading is out of
// scope.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// DefaultConfidenceThreshold triggers emergency classification for
// high-confidence intents even when the intent rule does not request it.
const DefaultConfidenceThreshold = 0.7

// IntentRule maps one intent label to its default behavior.
type IntentRule struct {
	Action           string `yaml:"action"`
	Response         string `yaml:"response"`
	TriggerEmergency bool   `yaml:"trigger_emergency"`
}

// EmergencyRule maps one emergency type to its escalated behavior.
// FacilityType is empty when no facility lookup applies.
type EmergencyRule struct {
	FacilityType domain.FacilityType `yaml:"facility_type"`
	Action       string              `yaml:"action"`
	Response     string              `yaml:"response"`
}

// ProfileTemplate holds the informational recommendations attached when the
// profile model predicts the given action.
type ProfileTemplate struct {
	Recommendations []string `yaml:"recommendations"`
}

// DecisionPolicy is the full rule table.
type DecisionPolicy struct {
	ConfidenceThreshold float64                    `yaml:"confidence_threshold"`
	DefaultAction       string                     `yaml:"default_action"`
	DefaultResponse     string                     `yaml:"default_response"`
	Intents             map[string]IntentRule      `yaml:"intents"`
	Emergencies         map[string]EmergencyRule   `yaml:"emergencies"`
	Profiles            map[string]ProfileTemplate `yaml:"profiles"`
}

// Load reads and validates a policy document. YAML is a superset of JSON, so
// both formats are accepted. A missing or malformed document is a startup
// failure; it must never be silently degraded.
func Load(path string) (*DecisionPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}

	p := &DecisionPolicy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}

	if p.ConfidenceThreshold == 0 {
		p.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if p.DefaultAction == "" {
		p.DefaultAction = domain.ActionNone
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("validate policy: %w", err)
	}
	return p, nil
}

func (p *DecisionPolicy) validate() error {
	if p.ConfidenceThreshold <= 0 || p.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %.2f outside (0, 1]", p.ConfidenceThreshold)
	}
	if len(p.Intents) == 0 {
		return fmt.Errorf("no intent rules configured")
	}
	if len(p.Emergencies) == 0 {
		return fmt.Errorf("no emergency rules configured")
	}
	if p.DefaultResponse == "" {
		return fmt.Errorf("default_response is required")
	}
	for label, rule := range p.Emergencies {
		if rule.FacilityType != "" && !rule.FacilityType.Valid() {
			return fmt.Errorf("emergency %q: unknown facility type %q", label, rule.FacilityType)
		}
	}
	return nil
}

// IntentRuleFor returns the rule for an intent label, falling back to the
// policy defaults for unmapped labels.
func (p *DecisionPolicy) IntentRuleFor(label string) IntentRule {
	if rule, ok := p.Intents[label]; ok {
		return rule
	}
	return IntentRule{Action: p.DefaultAction, Response: p.DefaultResponse}
}

// EmergencyRuleFor returns the rule for an emergency type and whether the
// type is mapped at all.
func (p *DecisionPolicy) EmergencyRuleFor(label string) (EmergencyRule, bool) {
	rule, ok := p.Emergencies[label]
	return rule, ok
}

// RecommendationsFor returns the recommendation template for a profile
// action, or nil when no template exists.
func (p *DecisionPolicy) RecommendationsFor(action string) []string {
	return p.Profiles[action].Recommendations
}
