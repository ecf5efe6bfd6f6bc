package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"mnr/schedule-api/api"
	"mnr/schedule-api/config"
	"mnr/schedule-api/metrics"
	"mnr/schedule-api/publisher"
	"mnr/schedule-api/realtime"
	"mnr/schedule-api/schedule"
	"mnr/schedule-api/store"
)

func initLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func main() {
	configPath := flag.String("config", "config.yml", "path to config.yml")
	flag.Parse()

	initLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	st, err := store.Open(cfg.Schedule.DatabaseURL)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := st.Ping(ctx); err != nil {
		log.Fatalf("store unreachable: %v", err)
	}

	pollInterval := time.Duration(cfg.Realtime.PollIntervalMS) * time.Millisecond
	collector := metrics.NewCollector(pollInterval)

	client := realtime.NewClient(cfg.Realtime.FeedURL, cfg.Realtime.APIKey,
		time.Duration(cfg.Realtime.TimeoutMS)*time.Millisecond)
	cache := realtime.NewCache(client, pollInterval, time.Duration(cfg.Realtime.TimeoutMS)*time.Millisecond)
	cache.OnRefresh(func(snap *realtime.Snapshot) {
		collector.FeedRefreshes.Inc()
		if snap.Timestamp > 0 {
			collector.SnapshotAge.Set(time.Since(time.Unix(snap.Timestamp, 0)).Seconds())
		}
	})
	cache.OnRefreshError(func(error) { collector.FeedRefreshErrs.Inc() })

	if cfg.NATS.URL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, collector)
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer pub.Close()
		cache.OnRefresh(pub.PublishSnapshot)
	}

	resolver := schedule.NewResolver(st, loc)
	enricher := schedule.NewEnricher(st, cache, 0)
	enricher.OnDegraded(func(string) { collector.DegradedRecords.Inc() })
	svc := schedule.NewService(st, resolver, enricher)

	if cfg.Realtime.FeedURL != "" {
		go cache.Run(ctx)
	}
	go schedule.RunDailyMaintenance(ctx, cfg.Schedule.RefreshAt, loc, func() {
		resolver.DropMemo()
		if err := st.Ping(ctx); err != nil {
			log.Printf("store ping after import window failed: %v", err)
		}
	})

	a := &api.API{Schedule: svc, Store: st, Realtime: cache, Metrics: collector}
	server := a.StartServer(cfg.Server.Port)

	var metricsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		metricsServer = collector.Serve(cfg.Server.MetricsAddr)
	}
	api.HandleGracefulShutdown(server, metricsServer)
}
