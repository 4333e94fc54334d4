package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight is a typed singleflight.Group. Concurrent callers of one key share a single
// run of fn; the zero value is ready.
type SingleFlight[T any] struct {
	group singleflight.Group
}

// Do reports shared=true when the result was handed to more than one caller.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	val, _ := v.(T)
	return val, err, shared
}

// Forget drops an in-flight key so the next caller starts a fresh run.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
