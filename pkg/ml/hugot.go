package ml

// hugot.go - scam-text classification over a frozen ONNX model via Hugot.
//
// The pipeline runs fully local. With an ONNX Runtime shared library
// available the ORT backend is used; otherwise Hugot's pure Go backend is
// used (slower, no native dependency).

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

// HugotConfig configures the Hugot-backed classifier.
type HugotConfig struct {
	// ModelPath is the local path to the ONNX model directory.
	ModelPath string

	// ModelName is the HuggingFace model name, used to download the model
	// when ModelPath does not exist yet.
	ModelName string

	// OnnxLibraryPath is the directory containing libonnxruntime. Empty
	// selects the pure Go backend.
	OnnxLibraryPath string

	// Timeout bounds a single inference call.
	Timeout time.Duration
}

// HugotClassifier implements Classifier over a Hugot text-classification
// pipeline. The loaded model is process-wide, read-only state; a failed
// load is fatal at startup, never degraded per-request.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.RWMutex
	config   HugotConfig
}

// NewHugotClassifier loads the model and builds the inference pipeline.
// Any failure here must prevent the engine from entering service.
func NewHugotClassifier(cfg HugotConfig) (*HugotClassifier, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	h := &HugotClassifier{config: cfg}

	session, err := h.createSession()
	if err != nil {
		return nil, fmt.Errorf("create hugot session: %w", err)
	}
	h.session = session

	modelPath, err := h.resolveModelPath()
	if err != nil {
		_ = h.session.Destroy()
		return nil, fmt.Errorf("resolve model path: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "scam-text-classifier",
	})
	if err != nil {
		_ = h.session.Destroy()
		return nil, fmt.Errorf("create classification pipeline: %w", err)
	}
	h.pipeline = pipeline

	log.Printf("classifier model loaded (path: %s)", modelPath)
	return h, nil
}

// createSession prefers the ONNX Runtime backend and falls back to the pure
// Go backend when no runtime library is configured or loadable.
func (h *HugotClassifier) createSession() (*hugot.Session, error) {
	if h.config.OnnxLibraryPath != "" {
		session, err := hugot.NewORTSession(
			options.WithOnnxLibraryPath(h.config.OnnxLibraryPath),
		)
		if err == nil {
			log.Printf("classifier using ONNX Runtime backend")
			return session, nil
		}
		log.Printf("ONNX Runtime unavailable, falling back to Go backend: %v", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("create Go session: %w", err)
	}
	log.Printf("classifier using pure Go backend")
	return session, nil
}

func (h *HugotClassifier) resolveModelPath() (string, error) {
	if h.config.ModelPath != "" {
		if _, err := os.Stat(h.config.ModelPath); err == nil {
			return h.config.ModelPath, nil
		}
	}

	if h.config.ModelName == "" {
		return "", fmt.Errorf("model path %q not found and no model name to download", h.config.ModelPath)
	}

	modelsDir := h.config.ModelPath
	if modelsDir == "" {
		modelsDir = "./models"
	}
	if err := os.MkdirAll(modelsDir, 0o755); err != nil {
		return "", fmt.Errorf("create models directory: %w", err)
	}

	log.Printf("downloading model %s...", h.config.ModelName)
	modelPath, err := hugot.DownloadModel(h.config.ModelName, modelsDir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", h.config.ModelName, err)
	}
	return modelPath, nil
}

// ClassifyProbabilities runs one inference and maps the model's top label
// onto the canonical SCAM/SAFE pair with complementary probabilities.
func (h *HugotClassifier) ClassifyProbabilities(ctx context.Context, normalized string) (Verdict, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.pipeline == nil {
		return Verdict{}, fmt.Errorf("classifier closed")
	}
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	result, err := h.pipeline.RunPipeline([]string{normalized})
	if err != nil {
		return Verdict{}, fmt.Errorf("inference failed: %w", err)
	}
	if len(result.ClassificationOutputs) == 0 || len(result.ClassificationOutputs[0]) == 0 {
		return Verdict{}, fmt.Errorf("no classification output returned")
	}

	out := result.ClassificationOutputs[0][0]
	return verdictFromOutput(out.Label, float64(out.Score)), nil
}

// verdictFromOutput converts a (model label, score) pair into a Verdict.
// The model is binary, so the losing class holds the complementary
// probability.
func verdictFromOutput(modelLabel string, score float64) Verdict {
	if isScamLabel(modelLabel) {
		return Verdict{
			Label:           LabelScam,
			ScamProbability: score,
			SafeProbability: 1 - score,
		}
	}
	return Verdict{
		Label:           LabelSafe,
		ScamProbability: 1 - score,
		SafeProbability: score,
	}
}

// Close releases the ONNX session. The classifier is unusable afterwards.
func (h *HugotClassifier) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pipeline = nil
	if h.session != nil {
		if err := h.session.Destroy(); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
		h.session = nil
	}
	return nil
}
