package scan

import (
	"context"
	"errors"
	"fmt"

	"dispatch-tracker/repositories"
	"dispatch-tracker/types"
)

type OwnerLookup interface {
	FindSeriesOwner(ctx context.Context, value string) (*repositories.SeriesOwner, error)
}

// Conflict names the field whose value is already registered and who holds it.
type Conflict struct {
	Field string
	Value string
	Owner *repositories.SeriesOwner
}

func (c *Conflict) Message() string {
	return fmt.Sprintf("serial %s (%s) already exists in box %s, scanned by %s",
		c.Value, c.Field, c.Owner.BoxNumber, ownerName(c.Owner))
}

func ownerName(o *repositories.SeriesOwner) string {
	if o.OwnerEmail == "" {
		return "unknown operator"
	}
	return o.OwnerEmail
}

// GlobalChecker is the read-only pre-check against the series registry.
// The unique index on the registry stays the actual guarantee.
type GlobalChecker struct {
	lookup OwnerLookup
}

func NewGlobalChecker(lookup OwnerLookup) *GlobalChecker {
	return &GlobalChecker{lookup: lookup}
}

// Check returns the first conflict in field order, nil when every value is
// free. Lookup failures are returned as errors, never as "not found".
func (g *GlobalChecker) Check(ctx context.Context, fields []string, series map[string]string) (*Conflict, error) {
	for _, name := range fields {
		value := series[name]
		if !types.IsPopulated(value) {
			continue
		}
		owner, err := g.lookup.FindSeriesOwner(ctx, value)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &Conflict{Field: name, Value: value, Owner: owner}, nil
	}
	return nil, nil
}
