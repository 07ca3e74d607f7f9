package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"roadwatch-go/internal/config"
	"roadwatch-go/internal/geo"
	"roadwatch-go/internal/metrics"
	"roadwatch-go/internal/models"
	"roadwatch-go/internal/services/regions"
	"roadwatch-go/internal/services/stats"
)

// Service polls the external traffic feed for regional incident snapshots
// and applies them to the region catalog. The feed owns its own retry and
// caching behavior; a failed poll here just logs and waits for the next
// tick.
type Service struct {
	cfg     *config.Config
	regions *regions.Service
	stats   *stats.Service
	client  *http.Client

	cancel context.CancelFunc
	done   chan struct{}
}

func NewService(cfg *config.Config, regionSvc *regions.Service, statsSvc *stats.Service) *Service {
	return &Service{
		cfg:     cfg,
		regions: regionSvc,
		stats:   statsSvc,
		client:  &http.Client{Timeout: cfg.TrafficFeedTimeout},
	}
}

// Enabled reports whether a feed URL is configured. Without one, snapshots
// arrive only via the REST ingestion endpoint.
func (s *Service) Enabled() bool {
	return s.cfg.TrafficFeedURL != ""
}

// Start launches the poll loop. No-op when the feed is not configured.
func (s *Service) Start(ctx context.Context) {
	if !s.Enabled() {
		log.Info().Msg("Traffic feed polling disabled, no TRAFFIC_FEED_URL set")
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	log.Info().
		Str("url", s.cfg.TrafficFeedURL).
		Dur("interval", s.cfg.TrafficPollInterval).
		Msg("Traffic feed polling started")

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.cfg.TrafficPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Traffic feed polling stopping")
				return
			case <-ticker.C:
				if err := s.poll(ctx); err != nil {
					log.Error().Err(err).Msg("Traffic feed poll failed")
				}
			}
		}
	}()
}

func (s *Service) poll(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL(), nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("traffic feed returned status %d", resp.StatusCode)
	}

	var snapshot []models.RegionSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return fmt.Errorf("decode traffic snapshot: %w", err)
	}

	s.Apply(snapshot)
	return nil
}

// feedURL scopes the feed query to a bounding box covering every region in
// the catalog, padded by the assignment radius. Feeds that ignore the
// parameters still work; they just return more than we need.
func (s *Service) feedURL() string {
	views := s.regions.Snapshot()
	if len(views) == 0 {
		return s.cfg.TrafficFeedURL
	}

	box := geo.BoxAround(views[0].Coordinates, s.cfg.RegionAssignRadiusKm)
	for _, r := range views[1:] {
		b := geo.BoxAround(r.Coordinates, s.cfg.RegionAssignRadiusKm)
		box.MinLat = math.Min(box.MinLat, b.MinLat)
		box.MinLon = math.Min(box.MinLon, b.MinLon)
		box.MaxLat = math.Max(box.MaxLat, b.MaxLat)
		box.MaxLon = math.Max(box.MaxLon, b.MaxLon)
	}

	u, err := url.Parse(s.cfg.TrafficFeedURL)
	if err != nil {
		return s.cfg.TrafficFeedURL
	}
	q := u.Query()
	q.Set("min_lat", strconv.FormatFloat(box.MinLat, 'f', 4, 64))
	q.Set("min_lon", strconv.FormatFloat(box.MinLon, 'f', 4, 64))
	q.Set("max_lat", strconv.FormatFloat(box.MaxLat, 'f', 4, 64))
	q.Set("max_lon", strconv.FormatFloat(box.MaxLon, 'f', 4, 64))
	u.RawQuery = q.Encode()
	return u.String()
}

// Apply feeds one snapshot into the catalog and records the bookkeeping.
// Shared by the poller and the REST ingestion endpoint.
func (s *Service) Apply(snapshot []models.RegionSnapshot) (applied, skipped int) {
	for _, entry := range snapshot {
		if s.regions.Has(entry.Location) {
			s.stats.RecordIngest(entry.Location, len(entry.Incidents))
			metrics.IncidentsIngestedTotal.WithLabelValues(entry.Location).Add(float64(len(entry.Incidents)))
		}
	}

	applied, skipped = s.regions.ReplaceIncidents(snapshot)
	if skipped > 0 {
		metrics.SnapshotSkipsTotal.Add(float64(skipped))
	}

	log.Debug().Int("applied", applied).Int("skipped", skipped).Msg("Traffic snapshot applied")
	return applied, skipped
}

// Shutdown stops the poll loop.
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
