package ticketleap

import (
	"fmt"

	"github.com/antzucaro/matchr"

	"ticketleap-bulk/lib/textutil"
)

// hard failures. Form submissions the admin panel rejects with a
// rendered error page travel as SubmitResult instead.
var (
	LoginFailed       = fmt.Errorf("failed to login to your account")
	InvalidImageType  = fmt.Errorf("not an allowed image file type")
	BadUploadResponse = fmt.Errorf("unexpected media upload response")
	InvalidDateRange  = fmt.Errorf("unrecognized date range text")
	UnknownEvent      = fmt.Errorf("unknown event slug")
	UnknownDate       = fmt.Errorf("unknown date")
	UnknownTicket     = fmt.Errorf("unknown ticket name")
	NoTicketRef       = fmt.Errorf("need a ticket name or uuid")
	NoDatesGiven      = fmt.Errorf("no dates given")
	NoValidDates      = fmt.Errorf("none of the given dates belong to the event")
)

// closestMatch returns the candidate most similar to name, or "" when
// nothing is close enough to make a useful hint.
func closestMatch(name string, candidates []string) string {
	var best string
	var bestScore float64
	for _, candidate := range candidates {
		score := matchr.JaroWinkler(
			textutil.NormalizeName(name),
			textutil.NormalizeName(candidate),
			false,
		)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < 0.8 {
		return ""
	}
	return best
}

// lookupError wraps kind so errors.Is still matches, with a typo hint
// when one of the known names is close.
func lookupError(kind error, name string, known []string) error {
	hint := closestMatch(name, known)
	if hint != "" {
		return fmt.Errorf("%w: %q (closest match: %q)", kind, name, hint)
	}
	return fmt.Errorf("%w: %q", kind, name)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
