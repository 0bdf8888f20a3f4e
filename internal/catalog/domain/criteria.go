package domain

import "strings"

// Criteria is a sparse set of optional filters supplied by a caller.
// A nil field and an empty string both mean "not specified".
type Criteria struct {
	Name        *string
	Benefit     *string
	Description *string
	Location    *string
	MaxCost     *float64
}

// ComposedQuery is the store-facing form of Criteria
type ComposedQuery struct {
	// SearchText is the blob scored against the item text fields.
	// Empty when RankingActive is false.
	SearchText string
	// MaxCost is nil when there is no cost ceiling.
	MaxCost       *float64
	RankingActive bool
}

// TextFields returns the specified text criteria in composition order:
// name, benefit, description, location.
func (c Criteria) TextFields() []string {
	var terms []string
	for _, field := range []*string{c.Name, c.Benefit, c.Description, c.Location} {
		if field == nil {
			continue
		}
		if v := strings.TrimSpace(*field); v != "" {
			terms = append(terms, v)
		}
	}
	return terms
}

func (c Criteria) costCeiling() *float64 {
	if c.MaxCost == nil || *c.MaxCost <= 0 {
		return nil
	}
	ceiling := *c.MaxCost
	return &ceiling
}

// Compose turns criteria into a search string, an optional cost ceiling and
// the ranking decision. It never fails.
func Compose(c Criteria) ComposedQuery {
	terms := c.TextFields()
	return ComposedQuery{
		SearchText:    strings.Join(terms, " "),
		MaxCost:       c.costCeiling(),
		RankingActive: len(terms) > 0,
	}
}
