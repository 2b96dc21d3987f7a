package scan

import (
	"fmt"
	"maps"
	"slices"

	"dispatch-tracker/models"
	"dispatch-tracker/types"
)

// MaxSeriesFields is the most serial fields a unit can carry.
const MaxSeriesFields = 4

// Clean strips whitespace from every value, drops empty ones and checks the
// result against the model's series configuration.
func Clean(model *models.ProductModel, series map[string]string) (map[string]string, error) {
	if len(series) > MaxSeriesFields {
		return nil, fmt.Errorf("a unit has at most %d series fields, got %d", MaxSeriesFields, len(series))
	}

	out := make(map[string]string, len(series))
	for name, raw := range series {
		field, ok := model.Field(name)
		if !ok {
			return nil, fmt.Errorf("field %q is not configured for model %s", name, model.Name)
		}
		value := types.StripSpaces(raw)
		if value == "" {
			continue
		}
		if field.Length > 0 && len(value) > field.Length {
			return nil, fmt.Errorf("field %s exceeds %d characters", name, field.Length)
		}
		out[name] = value
	}

	for _, field := range model.Fields() {
		if field.Required && out[field.Name] == "" {
			return nil, fmt.Errorf("field %s is required", field.Name)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one series value is required")
	}
	return out, nil
}

// OrderedFields returns the names present in series, in the model's
// configured order.
func OrderedFields(model *models.ProductModel, series map[string]string) []string {
	names := make([]string, 0, len(series))
	for _, field := range model.Fields() {
		if _, ok := series[field.Name]; ok {
			names = append(names, field.Name)
		}
	}
	// field names unknown to the model, only reachable without Clean
	for _, name := range slices.Sorted(maps.Keys(series)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// LocalDuplicate reports the first pair of fields carrying the same
// populated value. It performs no I/O.
func LocalDuplicate(fields []string, series map[string]string) (first, second string, found bool) {
	seen := make(map[string]string, len(fields))
	for _, name := range fields {
		value := series[name]
		if !types.IsPopulated(value) {
			continue
		}
		if prev, ok := seen[value]; ok {
			return prev, name, true
		}
		seen[value] = name
	}
	return "", "", false
}
