package projectlist

import "github.com/christophertwo/aella/internal/models"

// State is a snapshot of the list. Only the controller mutates it;
// subscribers receive copies.
type State struct {
	Items []models.Project
	// Query is what the user typed; ActiveQuery is the query Items belong to.
	Query       string
	ActiveQuery string
	// Page is the last page loaded successfully, 0 when none.
	Page           int
	InitialLoading bool
	LoadingMore    bool
	HasMore        bool
	LoadErr        error
}

// Loading reports whether any fetch is in flight.
func (s State) Loading() bool {
	return s.InitialLoading || s.LoadingMore
}

func (s State) clone() State {
	out := s
	out.Items = append([]models.Project(nil), s.Items...)
	return out
}

// Action is a user intent forwarded by the presentation layer.
type Action interface {
	isAction()
}

// SearchQueryChanged reports new text in the search field.
type SearchQueryChanged struct {
	Text string
}

// LoadMoreRequested reports that the user scrolled near the end of the list.
type LoadMoreRequested struct{}

func (SearchQueryChanged) isAction() {}
func (LoadMoreRequested) isAction()  {}
