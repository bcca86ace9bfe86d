package summary

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"lootlogger/internal/domain"
	"lootlogger/internal/tracker"
)

// Collector counts records as they pass through the notifier chain so the
// scheduler can post a digest without re-reading the store.
type Collector struct {
	next tracker.Notifier

	mu      sync.Mutex
	records map[string]int
	drops   map[string]int
}

// NewCollector wraps the next notifier in the chain.
func NewCollector(next tracker.Notifier) *Collector {
	return &Collector{
		next:    next,
		records: make(map[string]int),
		drops:   make(map[string]int),
	}
}

// RecordAdded counts the record and forwards it.
func (c *Collector) RecordAdded(rec domain.Record) {
	c.mu.Lock()
	c.records[rec.Name]++
	c.drops[rec.Name] += len(rec.Items)
	c.mu.Unlock()
	c.next.RecordAdded(rec)
}

// Refresh forwards the refresh notice.
func (c *Collector) Refresh() {
	c.next.Refresh()
}

// Reset forwards the identity reset. Counters are left alone; the digest
// window is bounded by the schedule, not the session.
func (c *Collector) Reset() {
	c.next.Reset()
}

// Drain renders the digest since the last drain and clears the counters.
// It returns "" when nothing was recorded.
func (c *Collector) Drain() string {
	c.mu.Lock()
	records, drops := c.records, c.drops
	c.records = make(map[string]int)
	c.drops = make(map[string]int)
	c.mu.Unlock()

	if len(records) == 0 {
		return ""
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s: %d records, %d drops", name, records[name], drops[name]))
	}
	return "Loot summary:\n" + strings.Join(lines, "\n")
}

// Start runs a cron-based digest scheduler. The schedule is a standard
// 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 21 * * *" (daily 9pm), "0 9 * * 6,0" (weekend mornings).
func Start(schedule string, loc *time.Location, c *Collector, post func(string)) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Summary disabled (summary_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid summary_schedule '%s': %v — summary disabled", schedule, err)
		return
	}

	log.Printf("Loot summary scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now().In(loc)
			next := sched.Next(now)
			log.Printf("Next loot summary at %s", next.Format("Mon Jan 2 15:04"))

			time.Sleep(next.Sub(now))

			if msg := c.Drain(); msg != "" {
				post(msg)
			} else {
				log.Println("No loot recorded since last summary")
			}
		}
	}()
}
