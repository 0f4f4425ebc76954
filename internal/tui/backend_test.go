package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"programctl/internal/api"
	"programctl/internal/program"
	"programctl/internal/store"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves api/programs and api/users from memory.
type fakeBackend struct {
	mu       sync.Mutex
	programs map[int64]program.Program
	users    []program.User
	nextID   int64
	requests []string
	bodies   []program.Program
}

func newFakeBackend(programs ...program.Program) *fakeBackend {
	b := &fakeBackend{
		programs: map[int64]program.Program{},
		users:    []program.User{{ID: 1, Login: "admin"}, {ID: 2, Login: "user"}},
		nextID:   1000,
	}
	for _, p := range programs {
		b.programs[p.ID] = p
	}
	return b
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/programs", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		items := make([]program.Program, 0, len(b.programs))
		for _, p := range b.programs {
			items = append(items, p)
		}
		b.mu.Unlock()
		sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

		total := len(items)
		if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && size > 0 {
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			from := min(page*size, len(items))
			to := min(from+size, len(items))
			items = items[from:to]
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		writeJSON(w, http.StatusOK, items)
	})
	mux.HandleFunc("GET /api/programs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		p, ok := b.lookup(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"title": "Not Found", "message": "error.http.404"})
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("POST /api/programs", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var p program.Program
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"title": err.Error()})
			return
		}
		b.mu.Lock()
		b.bodies = append(b.bodies, p)
		b.nextID++
		p.ID = b.nextID
		b.programs[p.ID] = p
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, p)
	})
	mux.HandleFunc("PUT /api/programs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		var p program.Program
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"title": err.Error()})
			return
		}
		b.mu.Lock()
		b.bodies = append(b.bodies, p)
		b.programs[p.ID] = p
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("DELETE /api/programs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		b.mu.Lock()
		delete(b.programs, id)
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		writeJSON(w, http.StatusOK, b.users)
	})
	return mux
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
}

func (b *fakeBackend) lookup(r *http.Request) (program.Program, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return program.Program{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.programs[id]
	return p, ok
}

func (b *fakeBackend) count(request string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == request {
			n++
		}
	}
	return n
}

func (b *fakeBackend) lastBody() program.Program {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.bodies) == 0 {
		return program.Program{}
	}
	return b.bodies[len(b.bodies)-1]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// harness runs screens against a fakeBackend without a Bubble Tea runtime.
type harness struct {
	t       *testing.T
	backend *fakeBackend
	env     *env
	sub     *store.Subscription
}

func newHarness(t *testing.T, backend *fakeBackend) *harness {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	st := store.New()
	actions := store.NewActions(st, client)
	sub := st.Subscribe()
	t.Cleanup(func() {
		actions.Wait()
		st.Unsubscribe(sub)
	})

	return &harness{
		t:       t,
		backend: backend,
		env:     &env{ctx: context.Background(), actions: actions, users: client, pageSize: 20},
		sub:     sub,
	}
}

// run executes cmd and every command it leads to, feeding action results
// and store changes back into s. Messages addressed to the App (navigation,
// status) are returned instead.
func (h *harness) run(s screen, cmd tea.Cmd) (screen, []tea.Msg) {
	h.t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}

	for {
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			if next == nil {
				continue
			}
			switch msg := execCmd(h.t, next).(type) {
			case nil:
			case tea.BatchMsg:
				queue = append(queue, msg...)
			case navigateMsg, statusMsg:
				out = append(out, msg)
			default:
				var c tea.Cmd
				s, c = s.Update(msg)
				queue = append(queue, c)
			}
			queue = append(queue, h.drainChanges(&s)...)
		}

		h.env.actions.Wait()
		queue = h.drainChanges(&s)
		if len(queue) == 0 {
			return s, out
		}
	}
}

func (h *harness) drainChanges(s *screen) []tea.Cmd {
	var cmds []tea.Cmd
	for {
		select {
		case change := <-h.sub.Channel:
			var c tea.Cmd
			*s, c = (*s).Update(storeChangeMsg{change: change})
			cmds = append(cmds, c)
		default:
			return cmds
		}
	}
}

// press sends one key to s and runs what follows.
func (h *harness) press(s screen, k tea.KeyMsg) (screen, []tea.Msg) {
	h.t.Helper()
	s, cmd := s.Update(k)
	return h.run(s, cmd)
}

func execCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

func staticCursors(f *FormModel) {
	for i := range f.inputs {
		f.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func navigations(msgs []tea.Msg) []Route {
	var routes []Route
	for _, m := range msgs {
		if n, ok := m.(navigateMsg); ok {
			routes = append(routes, n.route)
		}
	}
	return routes
}

func statuses(msgs []tea.Msg) []string {
	var texts []string
	for _, m := range msgs {
		if s, ok := m.(statusMsg); ok {
			texts = append(texts, s.text)
		}
	}
	return texts
}
