package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/pr-tracker/internal/core"
)

var (
	ErrRulesNotFound = errors.New("gate rules file not found")
	ErrRulesParsing  = errors.New("gate rules parsing failed")
)

// LoadGateRules loads the gate rules YAML file. A missing file yields the default
// rules together with ErrRulesNotFound so callers can log and continue.
func LoadGateRules(path string) (*core.GateRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultGateRules(), ErrRulesNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rules := core.DefaultGateRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRulesParsing, err)
	}
	if rules.ApprovalCheckName == "" {
		rules.ApprovalCheckName = core.DefaultApprovalCheckName
	}
	return rules, nil
}
