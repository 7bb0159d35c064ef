package seeds

import "iter"

// Interleave yields one element from each input sequence in turn,
// round-robin. When a sequence runs out it drops from the rotation and
// the rotation continues over the rest, so the output always contains
// every input element exactly once.
//
// Spreading consecutive output elements across sequences keeps the
// per-domain request rate low when the result is fed to a crawler,
// which makes tripping a site's rate limiting much less likely.
//
// The result is lazy: nothing is buffered beyond the input slices
// themselves, and early termination by the consumer stops all work.
func Interleave(sequences ...[]string) iter.Seq[string] {
	return func(yield func(string) bool) {
		live := make([][]string, 0, len(sequences))
		for _, seq := range sequences {
			if len(seq) > 0 {
				live = append(live, seq)
			}
		}

		for len(live) > 0 {
			remaining := live[:0]
			for _, seq := range live {
				if !yield(seq[0]) {
					return
				}
				if len(seq) > 1 {
					remaining = append(remaining, seq[1:])
				}
			}
			live = remaining
		}
	}
}
