// Package persistence holds the history store implementations and the
// helpers they share.
package persistence

import (
	"sort"

	"symptomcheck/domain/core/entities"
)

// Operation names used in persistence errors, logs and metrics
const (
	OpCreate = "create"
	OpList   = "list"
	OpDelete = "delete"
)

// SortNewestFirst orders records by creation time, newest first. Records
// created at the same instant keep their relative order.
func SortNewestFirst(records []*entities.DiagnosisRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt().After(records[j].CreatedAt())
	})
}
