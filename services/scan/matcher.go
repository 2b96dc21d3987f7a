package scan

import (
	"context"
	"fmt"
	"strings"

	"dispatch-tracker/models"
	"dispatch-tracker/types"
)

// SourceERP tags a match found in the ERP reference extract.
const SourceERP = "sap"

type ReferenceLookup interface {
	FindReferences(ctx context.Context, values []string) ([]models.SapData, error)
}

// Candidate is one field tried against the reference dataset, with its
// normalized value.
type Candidate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type Match struct {
	Found    bool
	Field    string
	Value    string
	Material string
	Source   string
	Tried    []Candidate
}

// Summary lists the tried field/value pairs for operator feedback.
func (m Match) Summary() string {
	if len(m.Tried) == 0 {
		return "no series value long enough to validate"
	}
	parts := make([]string, len(m.Tried))
	for i, c := range m.Tried {
		parts[i] = c.Field + ": " + c.Value
	}
	return strings.Join(parts, ", ")
}

// Matcher looks the scanned values up in the reference dataset, trying field
// names in an explicit priority order.
type Matcher struct {
	lookup   ReferenceLookup
	priority []string
}

func NewMatcher(lookup ReferenceLookup, priority []string) *Matcher {
	return &Matcher{lookup: lookup, priority: priority}
}

// Candidates orders the populated fields: names matching a priority entry
// (case-insensitive) in priority order first, then the rest in field order.
func (m *Matcher) Candidates(fields []string, series map[string]string) []Candidate {
	used := make(map[string]bool, len(fields))
	out := make([]Candidate, 0, len(fields))
	add := func(name string) {
		used[name] = true
		value := types.NormalizeSerial(series[name])
		if types.IsPopulated(value) {
			out = append(out, Candidate{Field: name, Value: value})
		}
	}

	for _, want := range m.priority {
		for _, name := range fields {
			if !used[name] && strings.EqualFold(strings.TrimSpace(want), name) {
				add(name)
			}
		}
	}
	for _, name := range fields {
		if !used[name] {
			add(name)
		}
	}
	return out
}

// Match returns the first candidate present in the reference dataset. A
// miss is not an error: Found is false and Tried lists what was attempted.
func (m *Matcher) Match(ctx context.Context, fields []string, series map[string]string) (Match, error) {
	candidates := m.Candidates(fields, series)
	result := Match{Tried: candidates}
	if len(candidates) == 0 {
		return result, nil
	}

	values := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if !seen[c.Value] {
			seen[c.Value] = true
			values = append(values, c.Value)
		}
	}

	rows, err := m.lookup.FindReferences(ctx, values)
	if err != nil {
		return result, fmt.Errorf("reference match: %w", err)
	}
	materials := make(map[string]string, len(rows))
	for _, row := range rows {
		if _, ok := materials[row.Series]; !ok {
			materials[row.Series] = row.Material
		}
	}

	for _, c := range candidates {
		if material, ok := materials[c.Value]; ok {
			result.Found = true
			result.Field = c.Field
			result.Value = c.Value
			result.Material = material
			result.Source = SourceERP
			return result, nil
		}
	}
	return result, nil
}
