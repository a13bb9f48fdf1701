package reason

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/fantasy"
	"charm.land/fantasy/schema"
	"github.com/charmbracelet/catwalk/pkg/catwalk"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/logging"
)

// Service implements Client on top of Fantasy's structured output call.
type Service struct {
	provider catwalk.Provider
	model    string
	log      *slog.Logger
}

var _ Client = (*Service)(nil)

// NewService creates a client for the given provider and model id.
func NewService(provider catwalk.Provider, model string, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{provider: provider, model: model, log: log}
}

// Parse asks the model to extract input variables and a flowchart from
// the algorithm the user described.
func (s *Service) Parse(ctx context.Context, req ParseRequest) (lab.ParseResult, error) {
	log := s.opLog(req.SessionID)
	log.Info("parse started", "mode", requestMode(req.ImagePath), "model", s.model)

	prompt, err := buildParsePrompt(req)
	if err != nil {
		err = &RemoteError{Op: "parse", Kind: FailureGeneric, Err: err}
		log.Warn("parse failed", "error", err)
		return lab.ParseResult{}, err
	}

	raw, err := s.generate(ctx, "parse", prompt, parseSchema, "AlgorithmAnalysis",
		"Input variables and flowchart extracted from an algorithm")
	if err != nil {
		log.Warn("parse failed", "error", err)
		return lab.ParseResult{}, err
	}

	var w wireParse
	if err := json.Unmarshal(raw, &w); err != nil {
		err = &RemoteError{Op: "parse", Kind: FailureGeneric, Err: fmt.Errorf("decode response: %w", err)}
		log.Warn("parse failed", "error", err)
		return lab.ParseResult{}, err
	}

	res := toParseResult(w)
	log.Info("parse finished", "variables", len(res.Variables), "steps", len(res.Flowchart))
	return res, nil
}

// Simulate asks the model to dry-run the algorithm with the user's
// inputs and judge the result.
func (s *Service) Simulate(ctx context.Context, req SimulateRequest) (lab.SimulationOutcome, error) {
	log := s.opLog(req.SessionID)
	log.Info("simulate started", "mode", requestMode(req.ImagePath), "model", s.model, "inputs", len(req.Inputs))

	prompt, err := buildSimulatePrompt(req)
	if err != nil {
		err = &RemoteError{Op: "simulate", Kind: FailureGeneric, Err: err}
		log.Warn("simulate failed", "error", err)
		return lab.SimulationOutcome{}, err
	}

	raw, err := s.generate(ctx, "simulate", prompt, simulateSchema, "DryRunResult",
		"Step trace and correctness verdict for one dry run of an algorithm")
	if err != nil {
		log.Warn("simulate failed", "error", err)
		return lab.SimulationOutcome{}, err
	}

	var w wireOutcome
	if err := json.Unmarshal(raw, &w); err != nil {
		err = &RemoteError{Op: "simulate", Kind: FailureGeneric, Err: fmt.Errorf("decode response: %w", err)}
		log.Warn("simulate failed", "error", err)
		return lab.SimulationOutcome{}, err
	}

	out := toOutcome(w)
	log.Info("simulate finished", "trace", len(out.Trace), "correct", out.IsCorrect, "score", out.AccuracyScore)
	return out, nil
}

// opLog tags log lines with the lab session they belong to.
func (s *Service) opLog(sessionID string) *slog.Logger {
	if sessionID == "" {
		return s.log
	}
	return s.log.With("session", sessionID)
}

// generate runs one structured output call and validates the response
// shape. One attempt only; a bad answer goes back to the user, who
// decides whether to resubmit.
func (s *Service) generate(ctx context.Context, op string, prompt fantasy.Prompt, sc schema.Schema, name, description string) ([]byte, error) {
	if strings.TrimSpace(s.model) == "" {
		return nil, &RemoteError{Op: op, Kind: FailureGeneric, Err: fmt.Errorf("model is required")}
	}

	model, err := NewLanguageModel(ctx, s.provider, s.model)
	if err != nil {
		return nil, &RemoteError{Op: op, Kind: Classify(err), Err: err}
	}

	response, err := model.GenerateObject(ctx, fantasy.ObjectCall{
		Prompt:            prompt,
		Schema:            sc,
		SchemaName:        name,
		SchemaDescription: description,
	})
	if err != nil {
		return nil, &RemoteError{Op: op, Kind: Classify(err), Err: err}
	}

	raw, err := json.Marshal(response.Object)
	if err != nil {
		return nil, &RemoteError{Op: op, Kind: FailureGeneric, Err: fmt.Errorf("encode response: %w", err)}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &RemoteError{Op: op, Kind: FailureGeneric, Err: fmt.Errorf("decode response: %w", err)}
	}
	if err := schema.ValidateAgainstSchema(parsed, sc); err != nil {
		return nil, &RemoteError{Op: op, Kind: FailureGeneric, Err: fmt.Errorf("response shape: %w", err)}
	}

	return raw, nil
}

func requestMode(imagePath string) string {
	if imagePath != "" {
		return "image"
	}
	return "text"
}
