package domain

import "gopkg.in/yaml.v3"

// Scenario is a named plan in a configuration file.
type Scenario struct {
	Name       string           `yaml:"name" json:"name"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	// Seed overrides Options.Seed for this scenario when set.
	Seed *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// UnmarshalYAML starts from DefaultSimulationConfig so scenarios only list what differs.
func (s *Scenario) UnmarshalYAML(node *yaml.Node) error {
	type plain Scenario
	p := plain{Simulation: DefaultSimulationConfig()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Scenario(p)
	return nil
}

// Configuration is the top-level scenario file.
type Configuration struct {
	Options     RunOptions   `yaml:"options" json:"options"`
	Scenarios   []Scenario   `yaml:"scenarios" json:"scenarios"`
	DebtOptions []DebtOption `yaml:"debt_options,omitempty" json:"debt_options,omitempty"`
}

// OptionsFor returns the run options for one scenario.
func (c *Configuration) OptionsFor(s Scenario) RunOptions {
	opts := c.Options
	if s.Seed != nil {
		opts.Seed = s.Seed
	}
	return opts
}
