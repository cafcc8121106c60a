package toast

import (
	"context"

	"github.com/vango-dev/crispy/internal/errors"
)

// ErrOutsideProvider is the configuration error raised when the toast API
// is used without a provider. Panics carry an error that matches it with
// errors.Is.
var ErrOutsideProvider = errors.New(errors.CodeOutsideProvider)

// Handle is what descendant code receives to show toasts. It exposes only
// Toast and Dismiss; the store behind it stays private to the Toaster.
//
// The zero Handle is not bound to a provider. Calling its methods panics
// with a T001 error every time, before doing anything else.
type Handle struct {
	t *Toaster
}

// Toast shows a toast. See Toaster.Toast.
func (h Handle) Toast(opts Options) ID {
	h.mustBeBound()
	return h.t.Toast(opts)
}

// Dismiss hides a toast. See Toaster.Dismiss.
func (h Handle) Dismiss(id ID) {
	h.mustBeBound()
	h.t.Dismiss(id)
}

// Bound reports whether the handle belongs to a provider.
func (h Handle) Bound() bool {
	return h.t != nil
}

func (h Handle) mustBeBound() {
	if h.t == nil {
		panic(outsideProvider())
	}
}

func outsideProvider() *errors.Error {
	return errors.New(errors.CodeOutsideProvider).
		WithSuggestion("Create a Toaster with toast.New and pass its Handle down, or wrap the context with toast.NewContext.")
}

type handleKey struct{}

// NewContext returns a copy of ctx carrying h.
func NewContext(ctx context.Context, h Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// FromContext returns the handle stored in ctx, if any.
func FromContext(ctx context.Context) (Handle, bool) {
	h, ok := ctx.Value(handleKey{}).(Handle)
	if !ok || !h.Bound() {
		return Handle{}, false
	}
	return h, true
}

// Use returns the handle stored in ctx. It panics with a T001 error when
// ctx carries no bound handle; that is a wiring bug, not a runtime
// condition to recover from.
func Use(ctx context.Context) Handle {
	h, ok := FromContext(ctx)
	if !ok {
		panic(outsideProvider())
	}
	return h
}
