package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/mode"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.breakout/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the per-session update rate.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// MachineFactory builds the machine of one SSH session. Audio is the
// factory's concern; remote sessions are expected to be muted.
type MachineFactory func(ctx context.Context, user string) *mode.Machine

// Journal records finished sessions. *storage.Store implements it.
type Journal interface {
	SaveSession(sess storage.Session) (string, error)
}

type sessionRun struct {
	machine *mode.Machine
	stats   *Stats
}

// SSHServer wraps a Wish SSH server running one machine per session.
type SSHServer struct {
	config     SSHServerConfig
	server     *ssh.Server
	newMachine MachineFactory
	opts       Options
	journal    Journal
	logger     *log.Logger

	mu   sync.Mutex
	runs map[string]sessionRun
}

// NewSSHServer creates a new SSH server. opts supplies the field size and
// key bindings; the screen size comes from each session's PTY. journal
// may be nil.
func NewSSHServer(cfg SSHServerConfig, newMachine MachineFactory, opts Options, journal Journal, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "breakout-ssh",
		})
	}
	opts.Logger = logger

	srv := &SSHServer{
		config:     cfg,
		newMachine: newMachine,
		opts:       opts,
		journal:    journal,
		logger:     logger,
		runs:       make(map[string]sessionRun),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".breakout", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a machine and its model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	opts := s.opts
	opts.Config.ScreenW = pty.Window.Width
	opts.Config.ScreenH = pty.Window.Height
	opts.Config.TickRate = s.config.TickRate
	opts.Logger = s.logger.With("user", sess.User())

	machine := s.newMachine(sess.Context(), sess.User())
	model := NewModel(machine, opts)

	s.mu.Lock()
	s.runs[sess.Context().SessionID()] = sessionRun{machine: machine, stats: model.Stats()}
	s.mu.Unlock()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// sessionMiddleware logs session events and journals the finished run.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		s.mu.Lock()
		run, ok := s.runs[sess.Context().SessionID()]
		delete(s.runs, sess.Context().SessionID())
		s.mu.Unlock()

		if ok {
			run.machine.Stop()
			s.record(Summarize(run.machine, run.stats))
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

func (s *SSHServer) record(res Result) {
	if s.journal == nil {
		return
	}
	id, err := s.journal.SaveSession(res.Session())
	if err != nil {
		s.logger.Warn("could not journal session", "err", err)
		return
	}
	s.logger.Debug("session journaled", "id", id, "frames", res.Frames, "reason", res.EndReason())
}

// ListenAndServe starts the SSH server and blocks until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
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
