package bom

import (
	"github.com/agentstation/bomtally/pkg/errors"
)

// Defaults of the synthetic-unit rule.
const (
	DefaultPrefixA      = "E014"
	DefaultPrefixB      = "V094"
	DefaultThreshold    = 25
	DefaultReservedCode = "EPC-23004-01"
)

// Rules configures the synthetic-unit rule. Counts of assembly codes that
// start with PrefixA or PrefixB are summed; every full Threshold of that sum
// adds one unit of ReservedCode to the totals.
type Rules struct {
	PrefixA      string `json:"prefix_a" yaml:"prefix_a" mapstructure:"prefix_a"`
	PrefixB      string `json:"prefix_b" yaml:"prefix_b" mapstructure:"prefix_b"`
	Threshold    int    `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	ReservedCode string `json:"reserved_code" yaml:"reserved_code" mapstructure:"reserved_code"`
}

// DefaultRules returns the rules used by the count reports this tool was
// built for.
func DefaultRules() Rules {
	return Rules{
		PrefixA:      DefaultPrefixA,
		PrefixB:      DefaultPrefixB,
		Threshold:    DefaultThreshold,
		ReservedCode: DefaultReservedCode,
	}
}

// Validate checks that the rules can be applied.
func (r Rules) Validate() error {
	switch {
	case r.PrefixA == "":
		return errors.NewValidationError("prefix_a", r.PrefixA, "prefix cannot be empty")
	case r.PrefixB == "":
		return errors.NewValidationError("prefix_b", r.PrefixB, "prefix cannot be empty")
	case r.Threshold <= 0:
		return errors.NewValidationError("threshold", r.Threshold, "threshold must be positive")
	case r.ReservedCode == "":
		return errors.NewValidationError("reserved_code", r.ReservedCode, "reserved code cannot be empty")
	}
	return nil
}
