/*
finding.go - Notes recorded while evaluating rules

PURPOSE:
  Every rule that fires leaves a Finding. Findings are either
  disqualifying (the household fails the rule) or informational (worth
  telling the household, but no effect on the verdict).

INVARIANT:
  A Findings list is "passing" iff it holds no disqualifying finding.
  There is no separate eligible flag to drift out of sync with the notes.

ORDERING:
  Findings keep insertion order. Evaluators append in rule order so the
  rendered notes read in the same order the checks ran.

SEE ALSO:
  - housing/evaluator.go: Appends findings per rule
  - render/text.go: Prints findings as bullet points
*/
package generic

// Severity classifies a finding.
type Severity string

const (
	SeverityDisqualifying Severity = "disqualifying"
	SeverityInformational Severity = "informational"
)

// FindingCode is a stable machine-readable identifier for a finding.
type FindingCode string

type Finding struct {
	Code     FindingCode
	Severity Severity
	Message  string
}

func (f Finding) Disqualifies() bool { return f.Severity == SeverityDisqualifying }

// Findings is an ordered, append-only list.
type Findings struct {
	items []Finding
}

// Disqualify records a finding that fails the household.
func (fs *Findings) Disqualify(code FindingCode, message string) {
	fs.items = append(fs.items, Finding{Code: code, Severity: SeverityDisqualifying, Message: message})
}

// Inform records a finding that does not affect the verdict.
func (fs *Findings) Inform(code FindingCode, message string) {
	fs.items = append(fs.items, Finding{Code: code, Severity: SeverityInformational, Message: message})
}

// Passing returns true if nothing disqualifying has been recorded.
func (fs *Findings) Passing() bool {
	for _, f := range fs.items {
		if f.Disqualifies() {
			return false
		}
	}
	return true
}

// List returns a copy of the findings in insertion order.
func (fs *Findings) List() []Finding {
	out := make([]Finding, len(fs.items))
	copy(out, fs.items)
	return out
}

// =============================================================================
// GATES - ordered checks where only the first failure is reported
// =============================================================================

// Gate is one condition in a priority chain.
type Gate[T any] struct {
	Code    FindingCode
	Fails   func(T) bool
	Message func(T) string
}

// FirstFailing walks gates in order and returns the first one that fails.
// Later gates are not consulted once one has failed.
func FirstFailing[T any](gates []Gate[T], in T) (Gate[T], bool) {
	for _, g := range gates {
		if g.Fails(in) {
			return g, true
		}
	}
	return Gate[T]{}, false
}
