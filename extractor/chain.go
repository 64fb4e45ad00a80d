package extractor

import "log/slog"

// Strategy is one source in a field's fallback chain. Run reports false
// when the source yields nothing usable.
type Strategy[T any] struct {
	Name string
	Run  func(p *Page) (T, bool)
}

// firstOf evaluates chain left-to-right and returns the first usable value.
func firstOf[T any](p *Page, chain []Strategy[T]) (T, bool) {
	for _, s := range chain {
		if v, ok := attempt(s.Name, func() (T, bool) { return s.Run(p) }); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// attempt runs fn, turning a panic into a miss so that one malformed
// candidate never takes down the whole extraction.
func attempt[T any](name string, fn func() (T, bool)) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("extractor: candidate panicked, skipping", "candidate", name, "panic", r)
			var zero T
			v, ok = zero, false
		}
	}()
	return fn()
}
