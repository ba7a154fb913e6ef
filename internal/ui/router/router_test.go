package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/tokenview/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScreen struct {
	name    string
	inits   int
	closed  bool
	updates []tea.Msg
	width   int
}

func (s *stubScreen) Init() tea.Cmd { s.inits++; return nil }

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.updates = append(s.updates, msg)
	return s, nil
}

func (s *stubScreen) View() string         { return s.name }
func (s *stubScreen) SetSize(width, _ int) { s.width = width }
func (s *stubScreen) Close()               { s.closed = true }

func newTestRouter() (*Router, map[ui.Route]*stubScreen) {
	built := map[ui.Route]*stubScreen{}
	factory := func(route ui.Route) Screen {
		if route > ui.RouteGas {
			return nil
		}
		s := &stubScreen{name: route.String()}
		built[route] = s
		return s
	}
	return New(&stubScreen{name: "root"}, factory), built
}

func TestNavigatePushesAndEscPops(t *testing.T) {
	r, built := newTestRouter()
	r.SetSize(100, 40)

	r.Update(ui.RouterMsg{To: ui.RouteSearch})
	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "search", r.View())
	assert.Equal(t, 100, built[ui.RouteSearch].width)
	assert.Equal(t, 1, built[ui.RouteSearch].inits)

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "root", r.View())
	assert.True(t, built[ui.RouteSearch].closed)
}

func TestEscOnRootIsForwarded(t *testing.T) {
	root := &stubScreen{name: "root"}
	r := New(root, nil)

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, root.updates, 1)
	assert.False(t, r.CanGoBack())
}

func TestNavigateMainMenuClearsStack(t *testing.T) {
	r, built := newTestRouter()
	r.Navigate(ui.RouteSearch)
	r.Navigate(ui.RouteGas)
	require.Equal(t, 3, r.Depth())

	r.Navigate(ui.RouteMainMenu)
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "main_menu", r.View())
	assert.True(t, built[ui.RouteSearch].closed)
	assert.True(t, built[ui.RouteGas].closed)
}

func TestUnknownRouteIsIgnored(t *testing.T) {
	r, _ := newTestRouter()
	assert.Nil(t, r.Navigate(ui.Route(99)))
	assert.Equal(t, 1, r.Depth())
}

func TestCloseClosesEveryScreen(t *testing.T) {
	r, built := newTestRouter()
	r.Navigate(ui.RouteGas)
	r.Close()
	assert.True(t, built[ui.RouteGas].closed)
	assert.True(t, r.stack[0].(*stubScreen).closed)
}
