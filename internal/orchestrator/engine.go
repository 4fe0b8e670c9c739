// Package orchestrator sequences a decision request through the panic
// short-circuit, input guard, intent and emergency classification, facility
// lookup, and profile recommendation stages, and folds the surviving signals
// into one actionable decision. Stage failures degrade the decision instead
// of failing the request: a partial answer always beats no answer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/observability"
	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/policy"
)

// Decision branches, used as the metrics branch label.
const (
	branchPanic        = "panic"
	branchNoInput      = "no_input"
	branchEmergency    = "emergency"
	branchConversation = "conversation"
)

// Classifier model names, used as the metrics model label.
const (
	modelIntent    = "intent"
	modelEmergency = "emergency"
	modelProfile   = "profile"
)

const panicResponse = "Protocolo de emergencia activado. Marcando al 911. Mantén la calma, la ayuda está en camino."

// FacilityResolver is the geographic port the engine needs: ranked nearest
// facilities around a point.
type FacilityResolver interface {
	FindNearest(ctx context.Context, coord domain.Coordinate, k int, typeFilter domain.FacilityType) ([]domain.FacilityMatch, error)
}

// Auditor publishes finished decisions to the audit stream. Publishing is
// best effort and never affects the decision returned to the caller.
type Auditor interface {
	Publish(ctx context.Context, decision domain.Decision) error
}

// Params collects the engine dependencies. Auditor may be nil when auditing
// is disabled.
type Params struct {
	Intent    domain.Classifier
	Emergency domain.Classifier
	Profile   domain.Classifier
	Resolver  FacilityResolver
	Policy    *policy.DecisionPolicy
	Logger    *slog.Logger
	Metrics   *observability.Metrics
	Auditor   Auditor

	// ClassifyTimeout bounds each individual classifier call.
	ClassifyTimeout time.Duration
	// NearestK is how many candidates the facility lookup ranks.
	NearestK int
}

// Engine is the decision orchestrator.
type Engine struct {
	intent    domain.Classifier
	emergency domain.Classifier
	profile   domain.Classifier
	resolver  FacilityResolver
	policy    *policy.DecisionPolicy
	logger    *slog.Logger
	metrics   *observability.Metrics
	auditor   Auditor

	classifyTimeout time.Duration
	nearestK        int

	ready atomic.Bool
}

// New builds the engine and marks it ready. All dependencies except the
// auditor are required.
func New(p Params) (*Engine, error) {
	if p.Intent == nil || p.Emergency == nil || p.Profile == nil {
		return nil, errors.New("orchestrator: all three classifiers are required")
	}
	if p.Resolver == nil {
		return nil, errors.New("orchestrator: facility resolver is required")
	}
	if p.Policy == nil {
		return nil, errors.New("orchestrator: decision policy is required")
	}
	if p.ClassifyTimeout <= 0 {
		p.ClassifyTimeout = 2 * time.Second
	}
	if p.NearestK <= 0 {
		p.NearestK = 5
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	e := &Engine{
		intent:          p.Intent,
		emergency:       p.Emergency,
		profile:         p.Profile,
		resolver:        p.Resolver,
		policy:          p.Policy,
		logger:          p.Logger,
		metrics:         p.Metrics,
		auditor:         p.Auditor,
		classifyTimeout: p.ClassifyTimeout,
		nearestK:        p.NearestK,
	}
	e.ready.Store(true)
	if e.metrics != nil {
		e.metrics.EngineReady.Set(1)
	}
	return e, nil
}

// CheckReadiness reports whether the engine can take decisions.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("decision engine not ready")
	}
	return nil
}

// Decide runs one request through the decision sequence and returns exactly
// one decision. The only error conditions are an invalid non-panic request
// and a cancelled context; every dependency failure degrades instead.
func (e *Engine) Decide(ctx context.Context, req domain.DecisionRequest) (domain.Decision, error) {
	start := domain.Now()

	// Panic dominates everything, including input validation: a user holding
	// the panic button gets the emergency protocol no matter what else the
	// request carries.
	if req.Panic {
		decision := e.finish(ctx, req, domain.Decision{
			ResponseText: panicResponse,
			AppAction:    domain.ActionDialEmergency,
			Metadata: domain.DecisionMetadata{
				Priority:  domain.PriorityCritical,
				PanicMode: true,
			},
		}, branchPanic, start)
		return decision, nil
	}

	if err := req.Validate(); err != nil {
		return domain.Decision{}, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.Location == nil && req.Profile == nil {
		decision := e.finish(ctx, req, domain.Decision{
			ResponseText: e.policy.DefaultResponse,
			AppAction:    e.policy.DefaultAction,
			Metadata:     domain.DecisionMetadata{Priority: domain.PriorityNormal},
		}, branchNoInput, start)
		return decision, nil
	}

	meta := domain.DecisionMetadata{Priority: domain.PriorityNormal}
	response := e.policy.DefaultResponse
	action := e.policy.DefaultAction
	escalated := false
	var facilityType domain.FacilityType

	if text != "" {
		pred, err := e.classify(ctx, e.intent, modelIntent, domain.Sample{Text: text})
		if err != nil {
			e.logger.Warn("intent classification degraded", "error", err)
		} else {
			meta.Intent = pred.Label
			meta.IntentConfidence = pred.Confidence

			rule := e.policy.IntentRuleFor(pred.Label)
			response = rule.Response
			action = rule.Action
			escalated = rule.TriggerEmergency || pred.Confidence > e.policy.ConfidenceThreshold
		}
	}

	if escalated {
		meta.Priority = domain.PriorityHigh

		pred, err := e.classify(ctx, e.emergency, modelEmergency, domain.Sample{Text: text})
		if err != nil {
			e.logger.Warn("emergency classification degraded", "error", err)
		} else {
			label := pred.Label
			meta.EmergencyType = &label
			if rule, ok := e.policy.EmergencyRuleFor(label); ok {
				response = rule.Response
				action = rule.Action
				facilityType = rule.FacilityType
			}
		}
	}

	if escalated && req.Location != nil && facilityType != "" {
		if match := e.lookupFacility(ctx, *req.Location, facilityType); match != nil {
			meta.NearestFacility = match
			response += fmt.Sprintf(" La instalación más cercana es %s, a %.1f km (aprox. %.0f min).",
				match.Facility.Name, match.DistanceKm, match.ETAMinutes)
		}
	}

	if req.Profile != nil {
		pred, err := e.classify(ctx, e.profile, modelProfile, domain.Sample{Features: req.Profile.FeatureVector()})
		if err != nil {
			e.logger.Warn("profile classification degraded", "error", err)
		} else {
			meta.Recommendations = e.policy.RecommendationsFor(pred.Label)
		}
	}

	branch := branchConversation
	if escalated {
		branch = branchEmergency
	}
	decision := e.finish(ctx, req, domain.Decision{
		ResponseText: response,
		AppAction:    action,
		Metadata:     meta,
	}, branch, start)
	return decision, nil
}

// finish stamps identity and timing onto the decision, records metrics, and
// publishes the audit record.
func (e *Engine) finish(ctx context.Context, req domain.DecisionRequest, d domain.Decision, branch string, start time.Time) domain.Decision {
	d.CreatedAt = domain.Now()
	d.ID = domain.NewDecisionID(req, d.CreatedAt)
	d.VoiceText = d.ResponseText

	if e.metrics != nil {
		e.metrics.DecisionsTotal.WithLabelValues(branch, d.Metadata.Priority).Inc()
		e.metrics.DecisionDuration.Observe(d.CreatedAt.Sub(start).Seconds())
	}
	e.logger.Info("decision produced",
		"decision_id", d.ID,
		"branch", branch,
		"priority", d.Metadata.Priority,
		"action", d.AppAction,
	)

	if e.auditor != nil {
		if err := e.auditor.Publish(ctx, d); err != nil {
			e.logger.Warn("audit publish failed", "decision_id", d.ID, "error", err)
			if e.metrics != nil {
				e.metrics.AuditRecordsPublished.WithLabelValues("error").Inc()
			}
		} else if e.metrics != nil {
			e.metrics.AuditRecordsPublished.WithLabelValues("success").Inc()
		}
	}
	return d
}

// classify runs one model call under the per-call timeout and records the
// classifier metrics.
func (e *Engine) classify(ctx context.Context, clf domain.Classifier, model string, sample domain.Sample) (domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, e.classifyTimeout)
	defer cancel()

	start := time.Now()
	pred, err := clf.Classify(ctx, sample)
	if e.metrics != nil {
		e.metrics.ClassifierDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		e.metrics.ClassifierRequests.WithLabelValues(model, outcome).Inc()
	}
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("%w: %s: %v", domain.ErrClassifierUnavailable, model, err)
	}
	return pred, nil
}

// lookupFacility finds the closest facility of the wanted type. A miss of
// any kind (resolver error, no facility of that type) returns nil.
func (e *Engine) lookupFacility(ctx context.Context, coord domain.Coordinate, facilityType domain.FacilityType) *domain.FacilityMatch {
	matches, err := e.resolver.FindNearest(ctx, coord, e.nearestK, facilityType)
	if err != nil {
		e.logger.Warn("facility lookup degraded", "facility_type", facilityType, "error", err)
		if e.metrics != nil {
			e.metrics.ResolverQueries.WithLabelValues("nearest", "error").Inc()
		}
		return nil
	}
	if len(matches) == 0 {
		if e.metrics != nil {
			e.metrics.ResolverQueries.WithLabelValues("nearest", "empty").Inc()
		}
		return nil
	}
	if e.metrics != nil {
		e.metrics.ResolverQueries.WithLabelValues("nearest", "success").Inc()
	}
	return &matches[0]
}
