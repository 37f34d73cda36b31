package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"hellbingo/config"
	"hellbingo/events"
	"hellbingo/infrastructure"

	log "github.com/sirupsen/logrus"
)

// RunWatch tails exported game events from NATS until ctx is cancelled
func RunWatch(ctx context.Context, out io.Writer) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	if !cfg.EventExportEnabled() {
		return fmt.Errorf("NATS_SERVERS is not set")
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err := client.Connect(connectCtx)
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.EventStreamName, []string{mapper.WildcardSubject()}); err != nil {
		return err
	}

	var mu sync.Mutex
	err = client.Subscribe(mapper.WildcardSubject(), func(data []byte) error {
		line, err := FormatEnvelope(data)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, line)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Watching game events, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

// FormatEnvelope renders an exported event as one line
func FormatEnvelope(data []byte) (string, error) {
	envelope, err := infrastructure.UnmarshalEnvelope(data)
	if err != nil {
		return "", err
	}
	event, err := envelope.DecodeEvent()
	if err != nil {
		return "", err
	}

	stamp := envelope.Timestamp.Local().Format("15:04:05.000")
	return fmt.Sprintf("%s %-18s %s", stamp, envelope.EventType, describeEvent(event)), nil
}

func describeEvent(event events.Event) string {
	switch e := event.(type) {
	case events.CampaignStartedEvent:
		return fmt.Sprintf("campaign %s seed %d ink %d", short(e.CampaignID.String()), e.Seed, e.StartingCurrency)
	case events.NightStartedEvent:
		return fmt.Sprintf("night %d, %d on the roster", e.Night, e.RosterSize)
	case events.NumberDrawnEvent:
		s := fmt.Sprintf("night %d draw #%d: %d", e.Night, e.DrawIndex, e.Number)
		if e.PlayerMatched {
			s += " (player)"
		}
		if e.EnemyWinner != "" {
			s += " winner " + e.EnemyWinner
		}
		return s
	case events.RowCompletedEvent:
		return fmt.Sprintf("row %d paid %d", e.Row+1, e.Reward)
	case events.PowerUpPurchasedEvent:
		return fmt.Sprintf("%s for %d, %d ink left", e.Kind, e.Cost, e.CurrencyAfter)
	case events.PowerUpUsedEvent:
		if e.Target != "" {
			return fmt.Sprintf("%s on %s", e.Kind, e.Target)
		}
		return string(e.Kind)
	case events.NightResolvedEvent:
		s := fmt.Sprintf("night %d %s after %d draws", e.Night, e.Outcome, e.Draws)
		if e.LoserName != "" {
			s += ", " + e.LoserName + " executed"
		}
		return s
	case events.CampaignEndedEvent:
		return fmt.Sprintf("campaign %s %s on night %d", short(e.CampaignID.String()), e.Result, e.NightsReached)
	default:
		return ""
	}
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
