package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/portfolio-sim/internal/domain"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario file. Options absent from the file
// keep their defaults.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.Configuration{Options: domain.DefaultRunOptions()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Options.Validate(); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if config.Options.Workers < 0 {
		return fmt.Errorf("options: %w", &domain.ConfigError{Field: "workers", Reason: "cannot be negative"})
	}

	if len(config.Scenarios) == 0 && len(config.DebtOptions) == 0 {
		return fmt.Errorf("%w: no scenarios provided", domain.ErrInvalidConfiguration)
	}

	names := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d: %w", i, &domain.ConfigError{Field: "name", Reason: "is required"})
		}
		if names[scenario.Name] {
			return fmt.Errorf("scenario %d: %w", i, &domain.ConfigError{Field: "name", Reason: fmt.Sprintf("duplicate %q", scenario.Name)})
		}
		names[scenario.Name] = true

		if err := scenario.Simulation.Validate(); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	for i, opt := range config.DebtOptions {
		if err := opt.Validate(); err != nil {
			return fmt.Errorf("debt option %d (%s): %w: %w", i, opt.Name, domain.ErrInvalidConfiguration, err)
		}
	}

	return nil
}

// Scenario looks up a scenario by name.
func Scenario(config *domain.Configuration, name string) (domain.Scenario, error) {
	for _, s := range config.Scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return domain.Scenario{}, fmt.Errorf("scenario %q not found", name)
}
