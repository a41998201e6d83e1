package locator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	name     string
	path     string
	hasFile  bool
	editable bool
}

func (v *fakeView) DisplayedFilePath() (string, bool) { return v.path, v.hasFile }
func (v *fakeView) CanFocusEditor() bool              { return v.editable }

type fakeWorkspace struct {
	views    []View
	listErr  error
	openErr  error
	revealed []View
	focused  []View
	opened   []string
}

func (w *fakeWorkspace) OpenViews() ([]View, error) { return w.views, w.listErr }

func (w *fakeWorkspace) Reveal(v View) error {
	w.revealed = append(w.revealed, v)
	return nil
}

func (w *fakeWorkspace) FocusEditor(v View) error {
	w.focused = append(w.focused, v)
	return nil
}

func (w *fakeWorkspace) OpenNew(path string) error {
	w.opened = append(w.opened, path)
	return w.openErr
}

func fileView(name, path string) *fakeView {
	return &fakeView{name: name, path: path, hasFile: true, editable: true}
}

func TestOpenOrFocusFocusesMatchingView(t *testing.T) {
	first := fileView("first", "a.md")
	second := fileView("second", "journal/2024-03-07.md")
	ws := &fakeWorkspace{views: []View{first, second}}

	res, err := OpenOrFocus(ws, "journal/2024-03-07.md")
	require.NoError(t, err)

	assert.Equal(t, ActionFocused, res.Action)
	assert.Same(t, second, res.View)
	assert.Equal(t, []View{second}, ws.revealed)
	assert.Equal(t, []View{second}, ws.focused)
	assert.Empty(t, ws.opened)
}

func TestOpenOrFocusOpensWhenMissing(t *testing.T) {
	ws := &fakeWorkspace{views: []View{
		fileView("a", "a.md"),
		&fakeView{name: "empty"},
	}}

	res, err := OpenOrFocus(ws, "journal/2024-03-07.md")
	require.NoError(t, err)

	assert.Equal(t, ActionOpened, res.Action)
	assert.Nil(t, res.View)
	assert.Equal(t, []string{"journal/2024-03-07.md"}, ws.opened)
	assert.Empty(t, ws.revealed)
	assert.Empty(t, ws.focused)
}

func TestOpenOrFocusFirstMatchWins(t *testing.T) {
	first := fileView("first", "daily.md")
	second := fileView("second", "daily.md")
	ws := &fakeWorkspace{views: []View{first, second}}

	res, err := OpenOrFocus(ws, "daily.md")
	require.NoError(t, err)
	assert.Same(t, first, res.View)
	assert.Len(t, ws.revealed, 1)
}

func TestOpenOrFocusExactMatchOnly(t *testing.T) {
	ws := &fakeWorkspace{views: []View{
		fileView("case", "Journal/2024-03-07.md"),
		fileView("basename", "2024-03-07.md"),
		fileView("nested", "old/journal/2024-03-07.md"),
	}}

	res, err := OpenOrFocus(ws, "journal/2024-03-07.md")
	require.NoError(t, err)
	assert.Equal(t, ActionOpened, res.Action)
	assert.Len(t, ws.opened, 1)
}

func TestOpenOrFocusSkipsEditorFocusForReadOnlyViews(t *testing.T) {
	pdf := &fakeView{name: "pdf", path: "paper.pdf", hasFile: true}
	ws := &fakeWorkspace{views: []View{pdf}}

	res, err := OpenOrFocus(ws, "paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, ActionFocused, res.Action)
	assert.Len(t, ws.revealed, 1)
	assert.Empty(t, ws.focused)
}

func TestOpenOrFocusWithoutReuse(t *testing.T) {
	ws := &fakeWorkspace{views: []View{fileView("a", "a.md")}}

	res, err := OpenOrFocus(ws, "a.md", ReuseExisting(false))
	require.NoError(t, err)
	assert.Equal(t, ActionOpened, res.Action)
	assert.Equal(t, []string{"a.md"}, ws.opened)
	assert.Empty(t, ws.revealed)
}

func TestOpenOrFocusErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := OpenOrFocus(&fakeWorkspace{listErr: boom}, "a.md")
	assert.ErrorIs(t, err, boom)

	ws := &fakeWorkspace{openErr: boom}
	_, err = OpenOrFocus(ws, "a.md")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, ws.opened, 1, "open is attempted exactly once")
}
