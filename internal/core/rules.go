package core

// GateRules represents the structure of the gate rules YAML file.
type GateRules struct {
	// Case-insensitive substrings that mark a check as review infrastructure.
	// Failures of these checks never block "ready for backend review".
	InfrastructurePatterns []string `yaml:"infrastructure_patterns"`

	// Bookkeeping check names, matched case-insensitively as exact name or substring.
	InfrastructureChecks []string `yaml:"infrastructure_checks"`

	// Name of the gating check published by this service.
	ApprovalCheckName string `yaml:"approval_check_name"`
}

// DefaultApprovalCheckName is the self-referential gating check.
const DefaultApprovalCheckName = "Require backend-review-group approval"

// DefaultGateRules returns the built-in rules.
func DefaultGateRules() *GateRules {
	return &GateRules{
		InfrastructurePatterns: []string{"backend", "danger"},
		InfrastructureChecks: []string{
			DefaultApprovalCheckName,
			"Check for PR labels",
			"Pull Request Labeler",
			"Auto assign",
			"Check CODEOWNERS entries",
			"Succeed if backend approval is confirmed",
		},
		ApprovalCheckName: DefaultApprovalCheckName,
	}
}
