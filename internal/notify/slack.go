package notify

import (
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"

	"lootlogger/internal/domain"
)

// Slack posts finished records to a channel. All posts are fire-and-forget;
// the correlation engine never waits on delivery.
type Slack struct {
	api     *slack.Client
	channel string
}

// NewSlack builds a notifier posting to the given channel.
func NewSlack(api *slack.Client, channelID string) *Slack {
	return &Slack{api: api, channel: channelID}
}

// RecordAdded announces a newly stored record.
func (s *Slack) RecordAdded(rec domain.Record) {
	msg := FormatRecord(rec)
	go s.post(msg)
}

// Refresh announces that an existing record was amended in place.
func (s *Slack) Refresh() {
	go s.post(fmt.Sprintf("Reclaimed drop added to the latest %s record.", domain.AbyssalSire))
}

// Reset is called when the tracked identity changes. Nothing to tear down
// on a channel sink.
func (s *Slack) Reset() {
	log.Println("Notifier reset: tracked identity changed")
}

func (s *Slack) post(msg string) {
	if _, _, err := s.api.PostMessage(s.channel, slack.MsgOptionText(msg, false)); err != nil {
		log.Printf("Error posting loot notification: %v", err)
	}
}

// FormatRecord renders one record as a single chat line.
func FormatRecord(rec domain.Record) string {
	parts := make([]string, 0, len(rec.Items))
	for _, item := range rec.Items {
		parts = append(parts, fmt.Sprintf("%d x %s", item.Quantity, item.Name))
	}

	kc := ""
	if rec.KillCount >= 0 {
		kc = fmt.Sprintf(" (KC %d)", rec.KillCount)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("*%s*%s: no drops", rec.Name, kc)
	}
	return fmt.Sprintf("*%s*%s: %s", rec.Name, kc, strings.Join(parts, ", "))
}

// Noop is the sink used when the UI surface is disabled. Correlation logic
// is unaffected.
type Noop struct{}

func (Noop) RecordAdded(domain.Record) {}
func (Noop) Refresh()                  {}
func (Noop) Reset()                    {}
