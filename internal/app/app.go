package app

import (
	"log"

	"github.com/slack-go/slack"

	"lootlogger/internal/config"
	"lootlogger/internal/items"
	"lootlogger/internal/notify"
	"lootlogger/internal/source"
	"lootlogger/internal/storage/sqlite"
	"lootlogger/internal/summary"
	"lootlogger/internal/tracker"
)

func Main() {
	cfg := config.LoadConfig()
	log.Printf(
		"Config loaded. Player=%s Journal=%s DB=%s EnableUI=%t IgnoreNmz=%t Timezone=%s",
		cfg.PlayerName, cfg.JournalPath, cfg.DBPath, cfg.EnableUI, cfg.IgnoreNmz, cfg.Timezone,
	)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()

	catalog, err := items.Load(cfg.ItemCatalogPath)
	if err != nil {
		log.Fatalf("Failed to load item catalog: %v", err)
	}

	var sink tracker.Notifier = notify.Noop{}
	var api *slack.Client
	if cfg.EnableUI {
		api = slack.New(cfg.SlackBotToken)
		sink = notify.NewSlack(api, cfg.LootChannelID)
	}
	collector := summary.NewCollector(sink)

	widgets := source.NewWidgets()
	trk := tracker.New(store, catalog, widgets, collector, tracker.Options{IgnoreNmz: cfg.IgnoreNmz})
	defer trk.Shutdown()

	if cfg.PlayerName != "" {
		if err := trk.HandleIdentityChanged(cfg.PlayerName); err != nil {
			log.Fatalf("Failed to bind player identity: %v", err)
		}
	}

	post := func(msg string) { log.Println(msg) }
	if api != nil {
		channel := cfg.LootChannelID
		post = func(msg string) {
			if _, _, err := api.PostMessage(channel, slack.MsgOptionText(msg, false)); err != nil {
				log.Printf("Summary post error: %v", err)
			}
		}
	}
	summary.Start(cfg.SummarySchedule, cfg.Location, collector, post)

	log.Println("Starting loot journal tailer...")
	tailer := source.NewTailer(cfg.JournalPath, trk, widgets)
	if err := tailer.Run(); err != nil {
		log.Fatalf("Journal tailer error: %v", err)
	}
}
