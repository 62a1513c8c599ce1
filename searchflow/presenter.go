package searchflow

// State is what the result area should show.
type State int

const (
	// StateIdle: no query has been entered.
	StateIdle State = iota
	StateLoading
	// StateEmptyNoResults: the search, or the band filter applied to it, matched nothing.
	StateEmptyNoResults
	StatePopulated
	// StateFailed: the last fetch errored. Kept apart from StateEmptyNoResults so a
	// network failure never reads as "no restaurants".
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateEmptyNoResults:
		return "empty_no_results"
	case StatePopulated:
		return "populated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NotFoundMessage is shown for StateEmptyNoResults.
const NotFoundMessage = "Restoran tidak ditemukan"

// Present derives the display state from the flow's fields. An empty query is
// idle and loading hides any earlier result. An empty filtered list only
// counts as empty while a band is selected.
func Present(query string, loading bool, err error, original, filtered []ResultRecord, sel Selection) State {
	switch {
	case query == "":
		return StateIdle
	case loading:
		return StateLoading
	case err != nil:
		return StateFailed
	case len(original) == 0:
		return StateEmptyNoResults
	}

	if _, ok := sel.Band(); ok && len(filtered) == 0 {
		return StateEmptyNoResults
	}
	return StatePopulated
}
