package complexity

import "github.com/rohaquinlop/cogniplexity/internal/output"

// SortFunctions orders a file's function reports for display. by selects the
// primary key ("complexity" or "name"); complexity sorts DESC with name ASC
// as a tiebreaker, name sorts ASC.
func SortFunctions(functions []FunctionReport, by string) error {
	criteria := []output.SortCriteria{
		{Field: "Name", Descending: false},
	}
	if by == "complexity" {
		criteria = []output.SortCriteria{
			{Field: "Complexity", Descending: true},
			{Field: "Name", Descending: false},
		}
	}
	return output.MultiFieldSort(&functions, criteria)
}
