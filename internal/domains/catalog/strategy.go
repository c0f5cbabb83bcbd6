package catalog

import "fmt"

// Strategy selects how a lookup by a non-key field is executed.
// All strategies return the same result for the same input.
type Strategy string

const (
	// StrategyFinder is a declarative exact-match finder (v1).
	StrategyFinder Strategy = "v1"
	// StrategyRawQuery runs a hand-written SQL statement (v2).
	StrategyRawQuery Strategy = "v2"
	// StrategyPredicate composes an equality predicate at call time (v3).
	StrategyPredicate Strategy = "v3"
)

// Strategies lists every strategy, in route order.
var Strategies = []Strategy{StrategyFinder, StrategyRawQuery, StrategyPredicate}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyFinder, StrategyRawQuery, StrategyPredicate:
		return true
	}
	return false
}

func (s Strategy) String() string {
	switch s {
	case StrategyFinder:
		return "finder"
	case StrategyRawQuery:
		return "raw_query"
	case StrategyPredicate:
		return "predicate"
	}
	return fmt.Sprintf("unknown(%s)", string(s))
}
