package scheduler

import "errors"

var (
	// ErrSourceExhausted indicates the previous render consumed nothing,
	// so no further source material exists.
	ErrSourceExhausted = errors.New("scheduler: source material exhausted")

	// ErrInsufficientMedia indicates the remaining catalog cannot cover
	// the next audio track's minimum image requirement.
	ErrInsufficientMedia = errors.New("scheduler: not enough media remaining for next audio track")

	// ErrAudioExhausted indicates no audio asset exists at the requested index.
	ErrAudioExhausted = errors.New("scheduler: no audio track at requested index")
)

// IsTerminal reports whether err ends a continuous run cleanly. Only the
// feasibility errors are terminal; render and persistence failures keep
// their error semantics and propagate.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrSourceExhausted) ||
		errors.Is(err, ErrInsufficientMedia) ||
		errors.Is(err, ErrAudioExhausted)
}
