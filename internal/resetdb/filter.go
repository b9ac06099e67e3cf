package resetdb

import "fmt"

// FilterMode decides how Options.SkipTables narrows the discovered tables.
type FilterMode string

const (
	// FilterInclude keeps only the listed tables. Despite the option's name
	// this is the established behaviour and callers depend on it.
	FilterInclude FilterMode = "include"
	// FilterExclude drops the listed tables and keeps everything else.
	FilterExclude FilterMode = "exclude"
)

func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case "", FilterInclude:
		return FilterInclude, nil
	case FilterExclude:
		return FilterExclude, nil
	default:
		return "", fmt.Errorf("unknown filter mode %q (want %q or %q)", s, FilterInclude, FilterExclude)
	}
}

// FilterTables returns the working table set in discovery order. An empty set
// passes every table through regardless of mode.
func FilterTables(discovered, set []string, mode FilterMode) []string {
	if len(set) == 0 {
		return append([]string(nil), discovered...)
	}

	listed := make(map[string]struct{}, len(set))
	for _, name := range set {
		listed[name] = struct{}{}
	}

	keep := mode != FilterExclude
	result := make([]string, 0, len(discovered))
	for _, table := range discovered {
		if _, ok := listed[table]; ok == keep {
			result = append(result, table)
		}
	}
	return result
}
