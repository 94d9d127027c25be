// ABOUTME: Confirmation gate consulted before destructive board actions.
// ABOUTME: Renderers supply their own prompt; the default declines.
package app

import "context"

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	// DeclineAll refuses every destructive action.
	DeclineAll Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
	// AcceptAll approves every destructive action. Callers using it must gate
	// destruction themselves, e.g. behind a --yes flag.
	AcceptAll Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
)
