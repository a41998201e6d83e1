// Package locator decides whether a note is already on screen and should be
// focused, or needs to be opened in a new view.
package locator

import "fmt"

// View is an open display surface that may show a file.
type View interface {
	// DisplayedFilePath returns the vault-relative path of the file shown
	// in the view, and false when the view shows no file.
	DisplayedFilePath() (string, bool)
	// CanFocusEditor reports whether the view has a text editor that can
	// take input focus.
	CanFocusEditor() bool
}

// Workspace enumerates, focuses and opens views.
type Workspace interface {
	OpenViews() ([]View, error)
	Reveal(v View) error
	FocusEditor(v View) error
	// OpenNew opens path in a new view. Creating a missing file is up to
	// the workspace.
	OpenNew(path string) error
}

// Action is what OpenOrFocus ended up doing.
type Action string

const (
	ActionFocused Action = "focused"
	ActionOpened  Action = "opened"
)

// Result describes a single OpenOrFocus decision.
type Result struct {
	Action Action
	Path   string
	View   View // set when an existing view was focused
}

type options struct {
	reuseExisting bool
}

// Option configures OpenOrFocus.
type Option func(*options)

// ReuseExisting controls whether already open views are searched before
// opening a new one. It defaults to true.
func ReuseExisting(reuse bool) Option {
	return func(o *options) {
		o.reuseExisting = reuse
	}
}

// OpenOrFocus focuses the first open view showing exactly path, or opens
// path in a new view when none does. Errors from the workspace are
// returned wrapped; nothing is retried.
func OpenOrFocus(ws Workspace, path string, opts ...Option) (Result, error) {
	o := &options{reuseExisting: true}
	for _, opt := range opts {
		opt(o)
	}

	if o.reuseExisting {
		v, err := Find(ws, path)
		if err != nil {
			return Result{}, err
		}
		if v != nil {
			if err := ws.Reveal(v); err != nil {
				return Result{}, fmt.Errorf("reveal view: %w", err)
			}
			if v.CanFocusEditor() {
				if err := ws.FocusEditor(v); err != nil {
					return Result{}, fmt.Errorf("focus editor: %w", err)
				}
			}
			return Result{Action: ActionFocused, Path: path, View: v}, nil
		}
	}

	if err := ws.OpenNew(path); err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	return Result{Action: ActionOpened, Path: path}, nil
}

// Find returns the first open view displaying exactly path, or nil.
func Find(ws Workspace, path string) (View, error) {
	views, err := ws.OpenViews()
	if err != nil {
		return nil, fmt.Errorf("list open views: %w", err)
	}
	for _, v := range views {
		if p, ok := v.DisplayedFilePath(); ok && p == path {
			return v, nil
		}
	}
	return nil, nil
}
