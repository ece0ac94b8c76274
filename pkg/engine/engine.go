// Package engine wires the classification pipeline: normalize, apply the
// deterministic rule layer, invoke the probabilistic classifier, and
// reconcile its verdict against length-aware confidence thresholds. The
// pipeline is strictly linear with two early exits (empty input, rule
// match); there is no retry and every call yields a complete result.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/scamwatch/scamwatch/pkg/cache"
	"github.com/scamwatch/scamwatch/pkg/ml"
	"github.com/scamwatch/scamwatch/pkg/phrases"
	"github.com/scamwatch/scamwatch/pkg/rules"
	"github.com/scamwatch/scamwatch/pkg/textnorm"
)

// Reconciliation defaults. A SCAM verdict below DowngradeProbability on a
// message shorter than DowngradeTokenLimit tokens is overridden to SAFE:
// the model is high-variance on short text and a weak SCAM there is more
// often a false positive than a caught scam.
const (
	DefaultDowngradeProbability = 0.65
	DefaultDowngradeTokenLimit  = 5

	// downgradeConfidence is the fixed confidence of a downgraded verdict.
	downgradeConfidence = 0.60
	// highConfidence is the reason-string cutoff for "highly likely".
	highConfidence = 0.80
	// errorConfidence is returned when inference fails mid-call.
	errorConfidence = 0.50
)

// Rule names for the engine's own early exits, alongside the rule layer's.
const (
	RuleEmpty = "empty"
	// RuleNone marks results decided by the model rather than a rule.
	RuleNone = ""
)

// Result is the externally observed outcome of one classification.
// Confidence is rounded to two decimals at this boundary.
type Result struct {
	Label      string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`

	// Rule names the deterministic rule that decided the result, empty for
	// model decisions. Internal detail for audit logging.
	Rule string `json:"-"`
	// Cached marks results served from the verdict cache.
	Cached bool `json:"-"`
}

// Options tune the reconciliation layer.
type Options struct {
	// DowngradeProbability is the SCAM-probability ceiling for the
	// short-message downgrade (default 0.65).
	DowngradeProbability float64
	// DowngradeTokenLimit is the exclusive token-count bound for the
	// downgrade (default 5).
	DowngradeTokenLimit int
}

func (o Options) withDefaults() Options {
	if o.DowngradeProbability <= 0 {
		o.DowngradeProbability = DefaultDowngradeProbability
	}
	if o.DowngradeTokenLimit <= 0 {
		o.DowngradeTokenLimit = DefaultDowngradeTokenLimit
	}
	return o
}

// Engine is the classification orchestrator. All fields are read-only after
// New; Classify is safe for unlimited concurrent callers.
type Engine struct {
	rules      *rules.Engine
	classifier ml.Classifier
	verdicts   *cache.Client // optional, nil disables caching
	opts       Options
}

// New builds an engine from an immutable registry and a loaded classifier.
func New(registry *phrases.Registry, classifier ml.Classifier, opts Options) *Engine {
	return &Engine{
		rules:      rules.New(registry),
		classifier: classifier,
		opts:       opts.withDefaults(),
	}
}

// WithVerdictCache attaches an optional Redis-backed cache for model-path
// results. Must be called before serving begins.
func (e *Engine) WithVerdictCache(c *cache.Client) *Engine {
	e.verdicts = c
	return e
}

// Classify runs the full pipeline on a raw message and always returns a
// complete result. Classifier invocation failures degrade to a conservative
// SAFE default rather than propagating: a false negative on an isolated
// failure is preferred over erroring the caller.
func (e *Engine) Classify(ctx context.Context, raw string) Result {
	normalized := textnorm.Normalize(raw)

	if normalized == "" {
		return Result{
			Label:      ml.LabelSafe,
			Confidence: 1.0,
			Reason:     "Message was empty after normalization (no letters); classified as SAFE by rule.",
			Rule:       RuleEmpty,
		}
	}

	if v := e.rules.Apply(normalized); v != nil {
		return Result{
			Label:      v.Label,
			Confidence: round2(v.Confidence),
			Reason:     v.Reason,
			Rule:       v.Rule,
		}
	}

	if e.verdicts != nil {
		if entry, ok := e.verdicts.Get(ctx, normalized); ok {
			return Result{
				Label:      entry.Label,
				Confidence: entry.Confidence,
				Reason:     entry.Reason,
				Cached:     true,
			}
		}
	}

	verdict, err := e.classifier.ClassifyProbabilities(ctx, normalized)
	if err != nil {
		return Result{
			Label:      ml.LabelSafe,
			Confidence: errorConfidence,
			Reason:     fmt.Sprintf("Error during prediction: %v. Defaulted to SAFE.", err),
		}
	}

	result := e.reconcile(verdict, normalized)

	if e.verdicts != nil {
		// Best effort: a failed store only costs a future inference.
		_ = e.verdicts.Set(ctx, normalized, cache.Entry{
			Label:      result.Label,
			Confidence: result.Confidence,
			Reason:     result.Reason,
		})
	}
	return result
}

// reconcile accepts or overrides the classifier's verdict based on its
// confidence and the message length, and derives the reason string.
func (e *Engine) reconcile(v ml.Verdict, normalized string) Result {
	if v.Label == ml.LabelScam &&
		v.ScamProbability < e.opts.DowngradeProbability &&
		textnorm.TokenCount(normalized) < e.opts.DowngradeTokenLimit {
		return Result{
			Label:      ml.LabelSafe,
			Confidence: downgradeConfidence,
			Reason: fmt.Sprintf(
				"Re-classified as SAFE due to low SCAM confidence (%.2f) on a short message.",
				v.ScamProbability),
		}
	}

	confidence := v.SafeProbability
	if v.Label == ml.LabelScam {
		confidence = v.ScamProbability
	}
	confidence = round2(confidence)

	reason := fmt.Sprintf("Classified by model with %.2f confidence.", confidence)
	if confidence > highConfidence {
		reason = fmt.Sprintf("Highly likely %s based on model prediction (%.2f confidence).", v.Label, confidence)
	}

	return Result{
		Label:      v.Label,
		Confidence: confidence,
		Reason:     reason,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
