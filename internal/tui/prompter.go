// ABOUTME: Bridges controller goroutines and the bubbletea loop.
// ABOUTME: Prompter turns delete confirmations into overlay messages; stateFeed coalesces snapshots.
package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/community/internal/app"
)

type confirmRequest struct {
	prompt string
	reply  chan bool
}

// confirmMsg asks the model to show a y/n overlay.
type confirmMsg struct {
	req confirmRequest
}

// Prompter is an app.Confirmer answered by the board's y/n overlay.
type Prompter struct {
	requests chan confirmRequest
}

var _ app.Confirmer = (*Prompter)(nil)

// NewPrompter creates a Prompter. Pass it to both app.WithConfirmer and
// NewBoardModel.
func NewPrompter() *Prompter {
	return &Prompter{requests: make(chan confirmRequest)}
}

// Confirm blocks until the overlay is answered. A cancelled context counts
// as a refusal.
func (p *Prompter) Confirm(ctx context.Context, prompt string) bool {
	req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}
	select {
	case p.requests <- req:
	case <-ctx.Done():
		return false
	}
	select {
	case ok := <-req.reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (p *Prompter) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-p.requests:
			return confirmMsg{req: req}
		case <-ctx.Done():
			return nil
		}
	}
}

// stateMsg carries a published controller snapshot.
type stateMsg app.State

// stateFeed keeps only the newest snapshot so publishing never blocks the
// controller.
type stateFeed struct {
	mu     sync.Mutex
	latest app.State
	ready  chan struct{}
}

func newStateFeed() *stateFeed {
	return &stateFeed{ready: make(chan struct{}, 1)}
}

func (f *stateFeed) push(s app.State) {
	f.mu.Lock()
	f.latest = s
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *stateFeed) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ready:
		case <-ctx.Done():
			return nil
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		return stateMsg(f.latest)
	}
}
