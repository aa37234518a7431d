package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flix/internal/debounce"
)

// QueryObserver forwards debounced search-box states to a channel for Bubble Tea.
type QueryObserver struct {
	ch chan debounce.Query
}

// NewQueryObserver creates an observer with room for size pending queries.
func NewQueryObserver(size int) *QueryObserver {
	return &QueryObserver{ch: make(chan debounce.Query, size)}
}

// OnQuery sends q to the channel without blocking. When the channel is
// full the oldest pending query is dropped so the latest always lands.
func (o *QueryObserver) OnQuery(q debounce.Query) {
	for {
		select {
		case o.ch <- q:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}

// Wait returns a command that delivers the next query as a QueryReadyMsg.
func (o *QueryObserver) Wait() tea.Cmd {
	return func() tea.Msg {
		return QueryReadyMsg{Query: <-o.ch}
	}
}
