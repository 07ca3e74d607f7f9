package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/metrics"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/matching"
	"roadwatch-go/internal/services/stats"
)

// Service drives the periodic diff scan. One goroutine runs the loop and
// executes each scan inline, so a slow scan delays the next tick instead
// of piling up concurrent passes.
type Service struct {
	cfg       *config.Config
	matcher   *matching.Service
	publisher models.MessagePublisher
	stats     *stats.Service

	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(cfg *config.Config, matcher *matching.Service, publisher models.MessagePublisher, statsSvc *stats.Service) *Service {
	return &Service{
		cfg:       cfg,
		matcher:   matcher,
		publisher: publisher,
		stats:     statsSvc,
	}
}

// Start launches the scan loop.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	log.Info().Dur("interval", s.cfg.ScanInterval).Msg("Scan loop started")

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.cfg.ScanInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Scan loop stopping")
				return
			case <-ticker.C:
				s.runScan()
			}
		}
	}()
}

// runScan executes one diff pass and fans the results out. Each send is
// best-effort: a failed publish is logged and the rest of the batch still
// goes out.
func (s *Service) runScan() {
	start := time.Now()

	notifications := s.matcher.Scan()
	delivered := 0
	for _, n := range notifications {
		subject := s.cfg.NotifySubjectPrefix + "." + n.UserID
		if err := s.publisher.Publish(subject, n.Payload); err != nil {
			log.Error().
				Err(err).
				Str("user_id", n.UserID).
				Str("location", n.Payload.Location).
				Msg("Failed to publish notification")
			metrics.NotifyFailuresTotal.Inc()
			continue
		}
		delivered++
		s.stats.RecordNotification(n.Payload.Location)
		metrics.NotificationsTotal.WithLabelValues(n.Payload.Location).Inc()
	}

	s.stats.RecordScan()
	metrics.ScansTotal.Inc()
	metrics.ScanDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	if len(notifications) > 0 {
		log.Info().
			Int("emitted", len(notifications)).
			Int("delivered", delivered).
			Dur("duration", time.Since(start)).
			Msg("Scan completed")
	}
}

// Shutdown stops the loop and waits for the in-flight scan to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
