package health

import (
	"context"
	"time"
)

// Pinger reports whether a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ModelStatus is the payload of the model readiness check.
type ModelStatus struct {
	OK    bool   `json:"ok"`
	Model string `json:"model,omitempty"`
	Error string `json:"error,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Model     Pinger
	ModelName string
	Timeout   time.Duration
}

// NewService constructs a new health service.
func NewService(model Pinger, modelName string) *Service {
	return &Service{Model: model, ModelName: modelName, Timeout: 3 * time.Second}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}

// ModelStatus pings the model endpoint.
func (s *Service) ModelStatus(ctx context.Context) ModelStatus {
	if s.Model == nil {
		return ModelStatus{OK: false, Error: "model client not configured"}
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	if err := s.Model.Ping(ctx); err != nil {
		return ModelStatus{OK: false, Model: s.ModelName, Error: err.Error()}
	}
	return ModelStatus{OK: true, Model: s.ModelName}
}
