package services

import (
	"net/url"
	"strconv"
)

// sortColumns whitelists the fields an admin may sort the listing by,
// keyed by the payload field names the frontends send.
var sortColumns = map[string]string{
	"submissionDate":       "submission_date",
	"eventName":            "event_name",
	"eventType":            "event_type",
	"status":               "status",
	"budget":               "budget",
	"expectedParticipants": "CAST(expected_participants AS DECIMAL(12,2))",
}

// NumericFilter is a single comparison against a numeric field.
type NumericFilter struct {
	Op    string // gte, lte or eq
	Value float64
}

func (f *NumericFilter) sqlOp() string {
	switch f.Op {
	case "gte":
		return ">="
	case "lte":
		return "<="
	default:
		return "="
	}
}

// Matches applies the comparison in memory. Used by tests and the stats
// cross-checks.
func (f *NumericFilter) Matches(v float64) bool {
	switch f.Op {
	case "gte":
		return v >= f.Value
	case "lte":
		return v <= f.Value
	default:
		return v == f.Value
	}
}

// ProposalFilter is the admin listing filter. Zero values mean "no
// constraint".
type ProposalFilter struct {
	Status       string
	EventType    string
	Budget       *NumericFilter
	Participants *NumericFilter
	SortBy       string
	SortOrder    string
}

// ParseProposalFilter builds a filter from query parameters. Unrecognized
// keys are ignored; a numeric filter with a non-numeric value or an unknown
// operator is rejected.
func ParseProposalFilter(values url.Values) (ProposalFilter, error) {
	f := ProposalFilter{
		Status:    values.Get("status"),
		EventType: values.Get("eventType"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}
	if f.SortBy == "" {
		f.SortBy = "submissionDate"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}

	var err error
	if f.Budget, err = parseNumericFilter(values, "budget", "budgetOperator"); err != nil {
		return f, err
	}
	if f.Participants, err = parseNumericFilter(values, "participants", "participantsOperator"); err != nil {
		return f, err
	}

	return f, nil
}

func parseNumericFilter(values url.Values, valueKey, opKey string) (*NumericFilter, error) {
	raw := values.Get(valueKey)
	op := values.Get(opKey)
	if raw == "" || op == "" {
		return nil, nil
	}

	if op != "gte" && op != "lte" && op != "eq" {
		return nil, &ValidationError{Field: opKey, Message: "must be one of gte, lte, eq"}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &ValidationError{Field: valueKey, Message: "must be numeric"}
	}

	return &NumericFilter{Op: op, Value: v}, nil
}
