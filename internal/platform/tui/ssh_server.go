package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vovakirdan/guard-patrol/internal/maps"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.patrol/host_key.
	HostKeyPath string

	// MapsDir is scanned once at startup for maps to offer.
	MapsDir string

	IdleTimeout    time.Duration
	CacheSize      int
	TickRate       int
	ShowPlacements bool
}

// SSHServer serves the patrol viewer over SSH.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	maps   []maps.Map
	cache  *lru.Cache[string, patrol.Result]
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// analyses are not recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "patrol-ssh",
		})
	}

	loader := maps.NewLoader(cfg.MapsDir)
	loaded, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot load maps from %s: %w", cfg.MapsDir, err)
	}
	for _, s := range loader.Skipped {
		logger.Warn("skipping map", "path", s.Path, "error", s.Err)
	}
	logger.Info("maps loaded", "dir", cfg.MapsDir, "count", len(loaded))

	cache, err := lru.New[string, patrol.Result](max(cfg.CacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("cannot create analysis cache: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		maps:   loaded,
		cache:  cache,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".patrol", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// Analyze returns the analysis of m, computing and recording it on a cache miss.
// Sessions viewing the same layout share one result.
func (s *SSHServer) Analyze(m maps.Map) patrol.Result {
	hash := m.Hash()
	if res, ok := s.cache.Get(hash); ok {
		return res
	}

	res := AnalyzeDirect(m)
	s.cache.Add(hash, res)
	s.logger.Debug("analysis computed", "map", m.ID, "visited", res.Visited,
		"placements", res.Placements, "elapsed", res.Elapsed)

	if s.store != nil {
		if _, err := s.store.SaveRun(storage.NewRunRecord(m.ID, hash, m.Height, m.Width, res)); err != nil {
			s.logger.Warn("could not record run", "map", m.ID, "error", err)
		}
	}
	return res
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := ViewerOptions{
		Width:          pty.Window.Width,
		Height:         pty.Window.Height,
		TickRate:       s.config.TickRate,
		ShowPlacements: s.config.ShowPlacements,
		Analyzer:       s.Analyze,
		Embedded:       true,
	}
	model := NewSessionModel(s.maps, opts)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages one session's flow: menu -> viewer -> menu.
type SessionModel struct {
	maps     []maps.Map
	opts     ViewerOptions
	menu     MenuModel
	viewer   *ViewerModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(items []maps.Map, opts ViewerOptions) SessionModel {
	opts.Embedded = true
	return SessionModel{
		maps: items,
		opts: opts,
		menu: NewMenuModel(items, opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	if m.viewer != nil {
		return m.updateViewer(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates while the picker is shown.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		viewer := NewViewerModel(*selected, m.opts)
		m.viewer = &viewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates while a patrol is shown.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(ViewerModel); ok {
		m.viewer = &viewer
	}

	if m.viewer.BackToMenu() {
		m.viewer = nil
		m.menu = NewMenuModel(m.maps, m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.viewer != nil {
		return m.viewer.View()
	}
	return m.menu.View()
}

// InViewer reports whether a patrol is being shown.
func (m SessionModel) InViewer() bool {
	return m.viewer != nil
}
