package source

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"lootlogger/internal/chat"
	"lootlogger/internal/correlate"
	"lootlogger/internal/domain"
	"lootlogger/internal/tracker"
)

// maxLineBytes allows for loot events with very large drop lists.
const maxLineBytes = 1024 * 1024

// Tailer follows the client bridge's newline-delimited JSON event journal
// and replays each line to the handler in order, preserving the host's
// one-event-at-a-time delivery guarantee.
type Tailer struct {
	path    string
	handler Handler
	widgets *Widgets
}

// NewTailer builds a tailer for the journal at path.
func NewTailer(path string, h Handler, w *Widgets) *Tailer {
	return &Tailer{path: path, handler: h, widgets: w}
}

// Run tails the journal until the watcher fails. Existing journal content
// is skipped; only events appended after startup are delivered.
func (t *Tailer) Run() error {
	absPath, err := filepath.Abs(t.path)
	if err != nil {
		return fmt.Errorf("resolve journal path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch journal directory: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer func() { file.Close() }()

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek journal end: %w", err)
	}
	log.Printf("Tailing journal %s from offset %d", absPath, offset)

	for {
		select {
		case ev := <-watcher.Events:
			if !strings.EqualFold(filepath.Clean(ev.Name), absPath) {
				continue
			}

			// Rotation: reopen and start over from the top.
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				file.Close()
				time.Sleep(100 * time.Millisecond)
				file, err = os.Open(absPath)
				if err != nil {
					log.Printf("Journal reopen failed: %v", err)
					continue
				}
				offset = 0
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				info, err := file.Stat()
				if err != nil {
					continue
				}
				if info.Size() < offset {
					// Truncated in place.
					offset = 0
				}
				offset = t.consume(file, offset)
			}

		case err := <-watcher.Errors:
			return fmt.Errorf("journal watcher: %w", err)
		}
	}
}

// consume reads journal lines from offset to EOF, dispatching each one, and
// returns the new offset.
func (t *Tailer) consume(file *os.File, offset int64) int64 {
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		log.Printf("Journal seek failed: %v", err)
		return offset
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		t.dispatch(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Journal read error: %v", err)
	}

	newOffset, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return offset
	}
	return newOffset
}

// dispatch decodes one journal line and delivers it. Malformed lines are
// logged and dropped; the journal is an unreliable append-only stream and
// one bad line must never corrupt state.
func (t *Tailer) dispatch(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	var ev envelope
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		log.Printf("Skipping malformed journal line: %v", err)
		return
	}

	switch ev.Type {
	case "chat":
		t.handler.HandleChatLine(chat.ParseChannel(ev.Channel), ev.Text)
	case "widget":
		itemID := correlate.NoItem
		if ev.ItemID != nil {
			itemID = *ev.ItemID
		}
		t.widgets.update(ev.Group, ev.Text, itemID)
		t.handler.HandleWidgetLoaded(ev.Group)
	case "tick":
		if err := t.handler.HandleTick(); err != nil {
			log.Printf("Tick handling error: %v", err)
		}
	case "loot":
		drops := make([]tracker.Drop, 0, len(ev.Drops))
		for _, d := range ev.Drops {
			drops = append(drops, tracker.Drop{ItemID: d.ItemID, Quantity: d.Quantity})
		}
		combatLevel := -1
		if ev.CombatLevel != nil {
			combatLevel = *ev.CombatLevel
		}
		loot := tracker.LootEvent{
			Source:      ev.Source,
			CombatLevel: combatLevel,
			Type:        domain.ParseRecordType(ev.RecordType),
			Drops:       drops,
			Regions:     ev.Regions,
			Plane:       ev.Plane,
		}
		if err := t.handler.HandleLootEvent(loot); err != nil {
			log.Printf("Loot event error for %s: %v", ev.Source, err)
		}
	case "identity":
		if err := t.handler.HandleIdentityChanged(ev.Username); err != nil {
			log.Printf("Identity change error: %v", err)
		}
	default:
		// Newer bridges may emit event types we do not know about.
	}
}
