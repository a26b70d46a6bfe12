package backend

import (
	"fmt"
	"log/slog"

	"fintrack/internal/ledger"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/ledger/remote"
)

// Type selects which ledger implementation the application talks to.
type Type string

const (
	// RemoteBackend talks to the live ledger HTTP API.
	RemoteBackend Type = "remote"
	// MemoryBackend is a process-local ledger for tests and offline demos.
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case RemoteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what backend construction needs.
type Config struct {
	Type Type

	// Remote specific
	APIBaseURL string
}

// New creates a ledger client based on the provided config.
func New(cfg Config, logger *slog.Logger) (ledger.Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Type {
	case RemoteBackend:
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("remote backend requires an API base URL")
		}
		logger.Info("Initialized remote ledger backend", "base_url", cfg.APIBaseURL)
		return remote.NewClient(cfg.APIBaseURL), nil
	case MemoryBackend:
		logger.Info("Initialized memory ledger backend")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
