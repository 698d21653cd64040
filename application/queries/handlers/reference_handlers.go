package handlers

import (
	"context"
	"fmt"

	"symptomcheck/application/queries"
	"symptomcheck/application/queries/bus"
	"symptomcheck/domain/reference"
)

// DescribeConditionHandler serves DescribeConditionQuery from the condition table
type DescribeConditionHandler struct{}

// NewDescribeConditionHandler creates a new describe handler
func NewDescribeConditionHandler() *DescribeConditionHandler {
	return &DescribeConditionHandler{}
}

// Handle implements bus.QueryHandler
func (h *DescribeConditionHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.DescribeConditionQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	return &queries.DescribeConditionResult{
		Condition: reference.Describe(q.Name),
		Known:     reference.IsKnownCondition(q.Name),
	}, nil
}

// ListSymptomsHandler serves ListSymptomsQuery
type ListSymptomsHandler struct{}

// NewListSymptomsHandler creates a new list symptoms handler
func NewListSymptomsHandler() *ListSymptomsHandler {
	return &ListSymptomsHandler{}
}

// Handle implements bus.QueryHandler
func (h *ListSymptomsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListSymptomsQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return reference.Rules(), nil
}
