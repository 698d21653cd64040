// Package services contains domain services that operate on the reference
// tables without touching infrastructure.
package services

import (
	"strings"
	"time"

	"symptomcheck/domain/core/entities"
	"symptomcheck/domain/core/valueobjects"
	"symptomcheck/domain/reference"
	pkgerrors "symptomcheck/pkg/errors"
)

// SymptomMatcher turns free-text symptoms into a diagnosis record by scanning
// the keyword table. It holds its own copy of the rules and no other state,
// so one matcher can serve concurrent callers.
type SymptomMatcher struct {
	rules     []reference.SymptomRule
	searchURL string
	now       func() time.Time
}

// MatcherOption configures a SymptomMatcher
type MatcherOption func(*SymptomMatcher)

// WithClock overrides the clock used to stamp records
func WithClock(now func() time.Time) MatcherOption {
	return func(m *SymptomMatcher) {
		m.now = now
	}
}

// WithRules replaces the built-in keyword table
func WithRules(rules []reference.SymptomRule) MatcherOption {
	return func(m *SymptomMatcher) {
		m.rules = rules
	}
}

// WithRemedySearchURL points remedy links at another retail search page
func WithRemedySearchURL(base string) MatcherOption {
	return func(m *SymptomMatcher) {
		m.searchURL = base
	}
}

// NewSymptomMatcher creates a matcher over the built-in keyword table
func NewSymptomMatcher(opts ...MatcherOption) *SymptomMatcher {
	m := &SymptomMatcher{
		rules: reference.Rules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.searchURL != "" && m.searchURL != valueobjects.DefaultRemedySearchURL {
		m.rules = relink(m.rules, m.searchURL)
	}
	return m
}

func relink(rules []reference.SymptomRule, base string) []reference.SymptomRule {
	out := make([]reference.SymptomRule, len(rules))
	for i, rule := range rules {
		remedies := make([]valueobjects.RemedyEntry, len(rule.Remedies))
		for j, r := range rule.Remedies {
			r.PurchaseLink = valueobjects.BuildSearchLink(base, r.Name)
			remedies[j] = r
		}
		rule.Remedies = remedies
		out[i] = rule
	}
	return out
}

// MatchResult is the outcome of a keyword scan
type MatchResult struct {
	Keywords  []string
	Diagnoses []string
	Remedies  []valueobjects.RemedyEntry
}

// Match scans text for every keyword in table order. Diagnoses and remedies
// keep their first-seen order; a remedy seen again under another keyword keeps
// the first description and link.
func (m *SymptomMatcher) Match(text string) MatchResult {
	normalized := strings.ToLower(text)

	var result MatchResult
	seenDiagnoses := make(map[string]struct{})
	seenRemedies := make(map[string]struct{})

	for _, rule := range m.rules {
		if !strings.Contains(normalized, rule.Keyword) {
			continue
		}
		result.Keywords = append(result.Keywords, rule.Keyword)

		for _, d := range rule.Diagnoses {
			if _, ok := seenDiagnoses[d]; ok {
				continue
			}
			seenDiagnoses[d] = struct{}{}
			result.Diagnoses = append(result.Diagnoses, d)
		}

		for _, r := range rule.Remedies {
			if _, ok := seenRemedies[r.Name]; ok {
				continue
			}
			seenRemedies[r.Name] = struct{}{}
			result.Remedies = append(result.Remedies, r)
		}
	}

	return result
}

// Analyze matches inputText and builds an unsaved record owned by ownerID,
// returning the scan it was built from alongside it.
// A missing owner fails with an unauthenticated error before the text is
// looked at; blank text fails with an empty input error.
func (m *SymptomMatcher) Analyze(inputText, ownerID string) (*entities.DiagnosisRecord, MatchResult, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, MatchResult{}, pkgerrors.NewUnauthenticatedError("please sign in to check symptoms")
	}
	if strings.TrimSpace(inputText) == "" {
		return nil, MatchResult{}, pkgerrors.NewEmptyInputError()
	}

	result := m.Match(inputText)
	record, err := entities.NewDiagnosisRecord(ownerID, inputText, result.Diagnoses, result.Remedies, m.now())
	if err != nil {
		return nil, MatchResult{}, err
	}
	return record, result, nil
}
