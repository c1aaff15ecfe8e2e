package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-overworld/internal/engine"
	"github.com/vovakirdan/tui-overworld/internal/storage"
)

// journal records runtime activity in storage. Write failures are logged and
// never interrupt the game.
type journal struct {
	session string
	store   *storage.Store
	events  *engine.EventRegistry
	logger  *log.Logger
}

func newJournal(session string, store *storage.Store, events *engine.EventRegistry, logger *log.Logger) *journal {
	return &journal{session: session, store: store, events: events, logger: logger}
}

func (j *journal) ScriptStarted(h engine.ScriptHandle, name string) {
	if _, err := j.store.RecordScriptStart(j.session, h.Raw(), name); err != nil {
		j.logger.Warn("journal write failed", "script", name, "error", err)
	}
}

func (j *journal) ScriptCompleted(h engine.ScriptHandle) {
	if err := j.store.RecordScriptEnd(j.session, h.Raw()); err != nil {
		j.logger.Warn("journal write failed", "script", h, "error", err)
	}
}

func (j *journal) EventRaised(event engine.EventHandle, subscribers int) {
	name := j.events.Name(event)
	if err := j.store.RecordEvent(j.session, name, subscribers); err != nil {
		j.logger.Warn("journal write failed", "event", name, "error", err)
	}
}
