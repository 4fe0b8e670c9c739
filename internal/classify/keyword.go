// Package classify provides the three prediction models behind the decision
// engine's classifier ports: a keyword-scoring intent model, a keyword-scoring
// emergency-type model, and a rule-based profile-action model. All three run
// in-process with no external service calls.
package classify

import (
	"context"
	"strings"

	"github.com/diego-frias-ramirez/AURA-Sentinel/internal/domain"
)

// smoothing is the Laplace constant added to every label score before
// normalizing. It keeps single-keyword matches from producing near-certain
// confidence while letting repeated evidence push past it.
const smoothing = 0.2

// KeywordClassifier scores text by counting keyword matches per label and
// normalizing the smoothed counts into a distribution. Texts with no matches
// fall back to a designated label at uniform confidence.
type KeywordClassifier struct {
	labels   []string
	keywords map[string][]string
	fallback string
}

// NewKeywordClassifier builds a classifier from the given label keyword
// table. Labels keep the iteration order of the labels slice, which decides
// ties; keywords are matched accent- and case-insensitively.
func NewKeywordClassifier(labels []string, keywords map[string][]string, fallback string) *KeywordClassifier {
	normalized := make(map[string][]string, len(keywords))
	for label, words := range keywords {
		ws := make([]string, len(words))
		for i, w := range words {
			ws[i] = normalize(w)
		}
		normalized[label] = ws
	}
	return &KeywordClassifier{labels: labels, keywords: normalized, fallback: fallback}
}

// Classify counts keyword hits in the sample text and returns the
// highest-scoring label with its smoothed probability.
func (c *KeywordClassifier) Classify(ctx context.Context, sample domain.Sample) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, err
	}

	text := normalize(sample.Text)
	hits := make(map[string]int, len(c.labels))
	total := 0
	for _, label := range c.labels {
		for _, kw := range c.keywords[label] {
			if strings.Contains(text, kw) {
				hits[label]++
				total++
			}
		}
	}

	n := float64(len(c.labels))
	if total == 0 {
		return domain.Prediction{Label: c.fallback, Confidence: 1 / n}, nil
	}

	denom := float64(total) + smoothing*n
	dist := make(map[string]float64, len(c.labels))
	best, bestScore := c.fallback, -1.0
	for _, label := range c.labels {
		p := (float64(hits[label]) + smoothing) / denom
		dist[label] = p
		if p > bestScore {
			best, bestScore = label, p
		}
	}
	return domain.Prediction{Label: best, Confidence: bestScore, Distribution: dist}, nil
}

// Intent labels.
const (
	IntentGreeting      = "saludo"
	IntentFarewell      = "despedida"
	IntentCalmRequest   = "solicitud_calma"
	IntentGeneralQuery  = "consulta_general"
	IntentEmergencyInfo = "informacion_emergencia"
)

// Emergency-type labels.
const (
	EmergencyMedical   = "medica"
	EmergencyAccident  = "accidente"
	EmergencyFire      = "incendio"
	EmergencyViolence  = "violencia"
	EmergencyEmotional = "crisis_emocional"
	EmergencyOther     = "otra"
)

// NewIntentClassifier returns the keyword model for conversational intent.
// Unmatched text falls back to consulta_general.
func NewIntentClassifier() *KeywordClassifier {
	labels := []string{
		IntentGreeting,
		IntentFarewell,
		IntentCalmRequest,
		IntentGeneralQuery,
		IntentEmergencyInfo,
	}
	keywords := map[string][]string{
		IntentGreeting: {
			"hola", "buenos días", "buenas tardes", "buenas noches", "qué tal",
		},
		IntentFarewell: {
			"adiós", "hasta luego", "nos vemos", "gracias por tu ayuda", "me despido",
		},
		IntentCalmRequest: {
			"tengo miedo", "asustado", "asustada", "nervioso", "nerviosa",
			"calmarme", "tranquilizarme", "ansiedad",
		},
		IntentGeneralQuery: {
			"dónde", "cómo llego", "teléfono", "número", "horario",
			"información", "dirección",
		},
		IntentEmergencyInfo: {
			"emergencia", "ayuda", "auxilio", "robaron", "asalto", "accidente",
			"choque", "incendio", "fuego", "herido", "herida", "sangre",
			"infarto", "violencia", "golpearon", "disparos",
		},
	}
	return NewKeywordClassifier(labels, keywords, IntentGeneralQuery)
}

// NewEmergencyClassifier returns the keyword model for emergency type.
// Unmatched text falls back to otra.
func NewEmergencyClassifier() *KeywordClassifier {
	labels := []string{
		EmergencyMedical,
		EmergencyAccident,
		EmergencyFire,
		EmergencyViolence,
		EmergencyEmotional,
		EmergencyOther,
	}
	keywords := map[string][]string{
		EmergencyMedical: {
			"infarto", "no respira", "desmay", "sangrado", "convulsion",
			"presión", "diabetes", "ambulancia", "dolor en el pecho", "herida",
		},
		EmergencyAccident: {
			"choque", "chocaron", "accidente", "atropell", "volcadura", "caída",
		},
		EmergencyFire: {
			"incendio", "fuego", "humo", "quemando", "explosión", "fuga de gas",
		},
		EmergencyViolence: {
			"robaron", "robo", "asalto", "asaltaron", "golpearon", "violencia",
			"disparos", "arma", "secuestro", "amenaza",
		},
		EmergencyEmotional: {
			"quiero morir", "suicid", "deprimido", "deprimida",
			"ataque de pánico", "desesperado", "desesperada", "crisis",
		},
		EmergencyOther: {},
	}
	return NewKeywordClassifier(labels, keywords, EmergencyOther)
}

// normalize lowercases text and strips the Spanish diacritics so keyword
// matching is accent-insensitive.
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case 'á':
			return 'a'
		case 'é':
			return 'e'
		case 'í':
			return 'i'
		case 'ó':
			return 'o'
		case 'ú', 'ü':
			return 'u'
		case 'ñ':
			return 'n'
		}
		return r
	}, s)
}
