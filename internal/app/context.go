package app

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying a. Commands read it back with
// FromContext.
func NewContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the App stored by NewContext, or
// ErrAppNotInitialized when ctx carries none.
func FromContext(ctx context.Context) (*App, error) {
	if ctx == nil {
		return nil, ErrAppNotInitialized
	}
	a, _ := ctx.Value(ctxKey{}).(*App)
	if a == nil {
		return nil, ErrAppNotInitialized
	}
	return a, nil
}
