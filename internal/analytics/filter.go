package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Age bracket values recognized by the analytics endpoint.
const (
	AgeGroupUnder18 = "<18"
	AgeGroup18To40  = "18-40"
	AgeGroupOver40  = ">40"
)

// Filter describes the predicate set applied uniformly to both analytics
// aggregations. Start and End are required and must be timezone-aware UTC
// instants; AgeGroup and Gender are optional.
type Filter struct {
	Start    time.Time
	End      time.Time
	AgeGroup string
	Gender   string
}

// Predicates renders the filter as an AND-joined SQL fragment over the
// aliases fc (feature_clicks) and u (users), with positional placeholders
// starting at argOffset+1. The date range is inclusive on both ends. An
// unrecognized age group adds no predicate.
func (f Filter) Predicates(argOffset int) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	args = append(args, f.Start, f.End)
	conds = append(conds, fmt.Sprintf("fc.timestamp >= $%d AND fc.timestamp <= $%d", argOffset+1, argOffset+2))

	switch f.AgeGroup {
	case AgeGroupUnder18:
		conds = append(conds, "u.age < 18")
	case AgeGroup18To40:
		conds = append(conds, "u.age BETWEEN 18 AND 40")
	case AgeGroupOver40:
		conds = append(conds, "u.age > 40")
	}

	if f.Gender != "" {
		args = append(args, f.Gender)
		conds = append(conds, fmt.Sprintf("u.gender = $%d", argOffset+len(args)))
	}

	return strings.Join(conds, " AND "), args
}
