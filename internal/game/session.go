// Package game wires one playable session: assets, the script runtime, the
// overworld screen and persistence.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-overworld/internal/assets"
	"github.com/vovakirdan/tui-overworld/internal/config"
	"github.com/vovakirdan/tui-overworld/internal/core"
	"github.com/vovakirdan/tui-overworld/internal/engine"
	"github.com/vovakirdan/tui-overworld/internal/overworld"
	"github.com/vovakirdan/tui-overworld/internal/resources"
	"github.com/vovakirdan/tui-overworld/internal/storage"
)

var (
	// ErrNoStore is returned by Save and Load when the session has no storage.
	ErrNoStore = errors.New("game: no storage configured")
	// ErrClosed is returned by Load after Close.
	ErrClosed = errors.New("game: session closed")
)

// Options configures a session.
type Options struct {
	Config    config.Config
	Assets    fs.FS          // Nil loads Config.Game.AssetsDir, or the embedded assets
	Store     *storage.Store // Optional; enables the journal and save slots
	Logger    *log.Logger    // Optional
	SessionID string         // Generated when empty
	Slot      string         // Start from this save slot instead of a new game
}

// Session is one running game. Scripts run on whichever goroutine calls
// Update, HandleAction or Load; mu only serializes those calls against Close,
// which the SSH server issues from the connection's teardown goroutine.
type Session struct {
	mu      sync.Mutex
	closed  bool
	id      string
	cfg     config.Config
	ctx     engine.GameContext
	runtime *engine.DefaultRuntime
	screen  *overworld.Screen
	store   *storage.Store
}

// New builds a session and enters the first room.
func New(opts Options) (*Session, error) {
	fsys := opts.Assets
	if fsys == nil {
		var err error
		if fsys, err = assets.Open(opts.Config.Game.AssetsDir); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}

	res := resources.NewStorage()
	if err := assets.Load(res, fsys); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	logger := opts.Logger
	if logger != nil {
		logger = logger.With("session", id)
	}

	s := &Session{
		id:      id,
		cfg:     opts.Config,
		runtime: engine.NewRuntime(logger),
		screen:  overworld.NewScreen(opts.Config.Movement()),
		store:   opts.Store,
	}
	s.ctx = engine.GameContext{
		Resources: res,
		Runtime:   s.runtime,
		Screen:    s.screen,
		Events:    engine.NewEventRegistry(),
		Logger:    logger,
	}
	if s.store != nil {
		s.runtime.SetObserver(newJournal(id, s.store, s.ctx.Events, s.ctx.Log()))
	}

	if opts.Slot != "" {
		if err := s.Load(opts.Slot); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}
	if err := s.screen.LoadRoom(s.ctx, opts.Config.Game.StartRoom, overworld.FromStart); err != nil {
		s.Close()
		return nil, fmt.Errorf("game: start room: %w", err)
	}
	return s, nil
}

// ID returns the session identifier used in the journal.
func (s *Session) ID() string {
	return s.id
}

// Context returns the session's game context.
func (s *Session) Context() engine.GameContext {
	return s.ctx
}

// Runtime returns the script runtime.
func (s *Session) Runtime() *engine.DefaultRuntime {
	return s.runtime
}

// Screen returns the overworld screen.
func (s *Session) Screen() *overworld.Screen {
	return s.screen
}

// Update advances the active screen by dt.
func (s *Session) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ctx.Screen.Update(s.ctx, dt)
}

// HandleAction forwards a translated input action to the active screen.
func (s *Session) HandleAction(action core.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.ctx.Screen.HandleAction(s.ctx, action)
}

// Render draws the active screen into dst. A closed session renders nothing.
func (s *Session) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst.Clear()
	if s.closed {
		return
	}
	s.ctx.Screen.Render(s.ctx, dst)
}

// Close releases every waiting script. The session ignores input afterwards.
// Close is idempotent and does not close the store.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	live := s.runtime.Live()
	s.runtime.Close()
	s.ctx.Log().Debug("session closed", "released", live)
}

// Save stores the current room, player position and unlocked exits in slot.
// Running scripts are not saved.
func (s *Session) Save(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNoStore
	}
	room := s.screen.Room()
	if room == nil {
		return fmt.Errorf("game: nothing to save")
	}
	p := room.Player()
	err := s.store.SaveGame(storage.SaveData{
		Slot:      slot,
		Room:      room.Name(),
		X:         p.Position().X,
		Y:         p.Position().Y,
		Direction: p.Direction().String(),
		Unlocked:  s.screen.Unlocked(),
	})
	if err != nil {
		return err
	}
	s.ctx.Log().Info("game saved", "slot", slot, "room", room.Name())
	return nil
}

// Load restores a save slot. The room is entered with overworld.FromSave, so
// its init script runs again; scripts already waiting keep waiting.
func (s *Session) Load(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.store == nil {
		return ErrNoStore
	}
	data, err := s.store.LoadGame(slot)
	if err != nil {
		return err
	}
	dir, ok := core.ParseDirection(data.Direction)
	if !ok {
		return fmt.Errorf("game: slot %q: unknown direction %q", slot, data.Direction)
	}

	s.screen.RestoreUnlocked(data.Unlocked)
	if err := s.screen.LoadRoom(s.ctx, data.Room, overworld.FromSave); err != nil {
		return fmt.Errorf("game: slot %q: %w", slot, err)
	}
	s.screen.Room().Player().Place(core.Point{X: data.X, Y: data.Y}, dir)
	s.ctx.Log().Info("game loaded", "slot", slot, "room", data.Room)
	return nil
}
