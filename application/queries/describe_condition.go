package queries

import (
	"strings"

	"symptomcheck/domain/reference"
	pkgerrors "symptomcheck/pkg/errors"
)

// DescribeConditionQuery looks up the reference entry for a diagnosis name
type DescribeConditionQuery struct {
	Name string
}

// Validate validates the DescribeConditionQuery
func (q DescribeConditionQuery) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return pkgerrors.NewValidationError("condition name is required")
	}
	return nil
}

// DescribeConditionResult wraps a condition with its known flag
type DescribeConditionResult struct {
	Condition reference.ConditionDetail
	Known     bool
}

// ListSymptomsQuery returns the keyword table
type ListSymptomsQuery struct{}

// Validate always succeeds
func (ListSymptomsQuery) Validate() error { return nil }
