package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidynest/hypr-keybind-manager/internal/core"
	"github.com/tidynest/hypr-keybind-manager/internal/danger"
)

// Severity classifies a validation issue. Errors block writes; warnings
// and info are reported but never block.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is one validation finding for one binding.
type Issue struct {
	// Index is the binding's position in the validated slice.
	Index int `json:"index" yaml:"index"`
	// Line is the source line of the binding, when known.
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Severity Severity `json:"-" yaml:"-"`
	// SeverityName mirrors Severity for serialized output.
	SeverityName string `json:"severity" yaml:"severity"`
	// Layer names the check that produced the issue: injection, danger,
	// or conflict.
	Layer      string `json:"layer" yaml:"layer"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Report aggregates every issue found across a set of bindings. Issues are
// accumulated, never first-stop: a single report lists all problems.
type Report struct {
	Issues []Issue `json:"issues" yaml:"issues"`
	// Checked is how many bindings were validated.
	Checked int `json:"checked" yaml:"checked"`
	// highest danger level seen across all command assessments
	highest danger.Level
}

// HasBlocking reports whether any issue is severe enough to block a write.
func (r *Report) HasBlocking() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HighestDanger returns the highest command risk level seen in the report.
func (r *Report) HighestDanger() danger.Level { return r.highest }

// Summary returns a one-line count of issues by severity.
func (r *Report) Summary() string {
	var errs, warns, infos int
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warns++
		default:
			infos++
		}
	}
	if len(r.Issues) == 0 {
		return fmt.Sprintf("%d bindings checked, no issues", r.Checked)
	}
	return fmt.Sprintf("%d bindings checked: %d errors, %d warnings, %d info", r.Checked, errs, warns, infos)
}

func (r *Report) add(issue Issue) {
	issue.SeverityName = issue.Severity.String()
	r.Issues = append(r.Issues, issue)
}

// Policy controls how command risk levels translate into severities.
type Policy struct {
	// BlockLevel is the lowest risk level reported as an error.
	BlockLevel danger.Level
	// WarnSuspicious reports suspicious commands below the block level;
	// when false they are omitted from the report.
	WarnSuspicious bool
}

// DefaultPolicy blocks critical and dangerous commands and warns on
// suspicious ones.
func DefaultPolicy() Policy {
	return Policy{BlockLevel: danger.Dangerous, WarnSuspicious: true}
}

// Validator runs every check over bindings: the injection whitelist on
// each binding, command risk assessment on exec bindings, and duplicate
// detection across the set.
type Validator struct {
	detector *danger.Detector
	policy   Policy
}

// NewValidator builds a validator with a fresh danger detector and the
// default policy.
func NewValidator() *Validator {
	return NewValidatorWithPolicy(DefaultPolicy())
}

// NewValidatorWithPolicy builds a validator with an explicit risk policy.
func NewValidatorWithPolicy(p Policy) *Validator {
	if p.BlockLevel <= danger.Safe {
		p.BlockLevel = DefaultPolicy().BlockLevel
	}
	return &Validator{detector: danger.NewDetector(), policy: p}
}

// ValidateBinding checks one binding and returns its issues plus the
// command risk assessment when the binding executes a command.
func (v *Validator) ValidateBinding(index int, b core.Keybinding) ([]Issue, *danger.Assessment) {
	var issues []Issue

	appendIssue := func(sev Severity, layer, msg, suggestion string) {
		issues = append(issues, Issue{
			Index:      index,
			Line:       b.Line,
			Severity:   sev,
			Layer:      layer,
			Message:    msg,
			Suggestion: suggestion,
		})
	}

	if err := core.ValidateDispatcher(b.Dispatcher); err != nil {
		appendIssue(SeverityError, "injection",
			fmt.Sprintf("dispatcher %q is not allowed", b.Dispatcher),
			"Use one of the known Hyprland dispatchers.")
	}
	if err := core.ValidateKey(b.Combo.Key()); err != nil {
		appendIssue(SeverityError, "injection",
			fmt.Sprintf("key %q is not a valid key name", b.Combo.Key()),
			"Use a single key, alphanumeric name, or a named special key such as Return.")
	}
	if len(b.Args) > core.MaxArgLength {
		appendIssue(SeverityError, "injection",
			fmt.Sprintf("arguments exceed %d characters (%d)", core.MaxArgLength, len(b.Args)),
			"Move long commands into a script and bind the script instead.")
	}
	if err := core.CheckShellMetacharacters(b.Args); err != nil {
		var detail string
		if errors.Is(err, core.ErrShellMetacharacters) {
			detail = err.Error()
		} else {
			detail = "arguments contain shell metacharacters"
		}
		appendIssue(SeverityError, "injection", detail,
			"Remove shell metacharacters, or wrap the command in a script.")
	}

	var assessment *danger.Assessment
	if isExecDispatcher(b.Dispatcher) && b.Args != "" {
		a := v.detector.Assess(b.Args)
		assessment = &a
		switch {
		case a.Level >= v.policy.BlockLevel:
			appendIssue(SeverityError, "danger", a.Reason, a.Recommendation)
		case a.Level == danger.Suspicious && !v.policy.WarnSuspicious:
			// omitted by policy
		case a.Level > danger.Safe:
			appendIssue(SeverityWarning, "danger", a.Reason, a.Recommendation)
		}
	}

	return issues, assessment
}

// ValidateAll checks every binding and the set as a whole. Duplicate key
// combinations are reported as warnings since Hyprland silently keeps the
// first and drops the rest.
func (v *Validator) ValidateAll(bindings []core.Keybinding) Report {
	report := Report{Checked: len(bindings)}

	for i, b := range bindings {
		issues, assessment := v.ValidateBinding(i, b)
		for _, issue := range issues {
			report.add(issue)
		}
		if assessment != nil && assessment.Level > report.highest {
			report.highest = assessment.Level
		}
	}

	detector := core.NewConflictDetector()
	detector.AddAll(bindings)
	for _, c := range detector.Conflicts() {
		lines := make([]string, 0, len(c.Bindings))
		for _, b := range c.Bindings {
			lines = append(lines, fmt.Sprintf("%d", b.Line))
		}
		report.add(Issue{
			Index:    indexOf(bindings, c.Bindings[0]),
			Line:     c.Bindings[0].Line,
			Severity: SeverityWarning,
			Layer:    "conflict",
			Message: fmt.Sprintf("%s is bound %d times (lines %s)",
				c.Combo.String(), len(c.Bindings), strings.Join(lines, ", ")),
			Suggestion: "Remove or rebind the duplicates; only the first takes effect.",
		})
	}

	return report
}

// ValidateContent parses raw config content and validates the resulting
// bindings. Skipped parser lines become info issues so a report covers
// everything the parser could not understand.
func (v *Validator) ValidateContent(content, basePath string) (Report, core.ParseResult) {
	result := core.Parse(content, basePath)
	report := v.ValidateAll(result.Bindings)
	for _, s := range result.Skipped {
		report.add(Issue{
			Index:    -1,
			Line:     s.Line,
			Severity: SeverityInfo,
			Layer:    "parse",
			Message:  fmt.Sprintf("line %d skipped: %s", s.Line, s.Reason),
		})
	}
	return report, result
}

func isExecDispatcher(name string) bool {
	switch strings.ToLower(name) {
	case "exec", "execr":
		return true
	}
	return false
}

func indexOf(bindings []core.Keybinding, target core.Keybinding) int {
	for i, b := range bindings {
		if b.Equal(target) && b.Line == target.Line {
			return i
		}
	}
	return 0
}
