// Package feed simulates the realtime photo collection: a seeded stream of
// joins and leaves against a live set. The churn pattern, aspect ratios, and
// synthetic URLs are reproducible from the seed; photo IDs are fresh UUIDs
// per run.
package feed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"photo-collage-engine/internal/photo"
)

// Aspect ratios drawn for new photos, mirroring a typical camera roll.
var aspects = []float64{0.75, 1.0, 1.33, 1.5, 1.78}

// Config parameterizes the churn. Zero values take the documented defaults.
type Config struct {
	Seed        int64
	Initial     int     // photos present at start (default 12)
	MinPhotos   int     // leaves stop here (default 3)
	MaxPhotos   int     // joins stop here (default 48)
	JoinChance  float64 // per-tick probability of a join (default 0.03)
	LeaveChance float64 // per-tick probability of a leave (default 0.02)
	Start       time.Time
}

// Simulator mutates a live photo set with random joins and leaves.
type Simulator struct {
	rng    *rand.Rand
	cfg    Config
	photos []photo.Photo
	nextID int
}

// New seeds a simulator and populates the initial set with staggered
// creation times so the starting slot order is stable.
func New(cfg Config) *Simulator {
	if cfg.Initial <= 0 {
		cfg.Initial = 12
	}
	if cfg.MinPhotos <= 0 {
		cfg.MinPhotos = 3
	}
	if cfg.MaxPhotos <= 0 {
		cfg.MaxPhotos = 48
	}
	if cfg.MaxPhotos < cfg.MinPhotos {
		cfg.MaxPhotos = cfg.MinPhotos
	}
	if cfg.JoinChance == 0 {
		cfg.JoinChance = 0.03
	}
	if cfg.LeaveChance == 0 {
		cfg.LeaveChance = 0.02
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}

	s := &Simulator{
		rng: rand.New(rand.NewSource(cfg.Seed)),
		cfg: cfg,
	}
	for i := 0; i < cfg.Initial; i++ {
		s.photos = append(s.photos, s.newPhoto(cfg.Start.Add(time.Duration(i-cfg.Initial)*time.Second)))
	}
	return s
}

// Photos returns the live set. It stays valid until the next Tick; the
// scene copies what it needs during Step.
func (s *Simulator) Photos() []photo.Photo {
	return s.photos
}

// Tick rolls the join and leave dice once and returns the updated set.
func (s *Simulator) Tick(now time.Time) []photo.Photo {
	if len(s.photos) < s.cfg.MaxPhotos && s.rng.Float64() < s.cfg.JoinChance {
		s.photos = append(s.photos, s.newPhoto(now))
	}
	if len(s.photos) > s.cfg.MinPhotos && s.rng.Float64() < s.cfg.LeaveChance {
		i := s.rng.Intn(len(s.photos))
		s.photos = append(s.photos[:i], s.photos[i+1:]...)
	}
	return s.photos
}

func (s *Simulator) newPhoto(created time.Time) photo.Photo {
	aspect := aspects[s.rng.Intn(len(aspects))]
	url := fmt.Sprintf("proc://photo/%d?aspect=%.2f", s.nextID, aspect)
	s.nextID++
	return photo.Photo{
		ID:        uuid.NewString(),
		URL:       url,
		CreatedAt: created,
		Width:     int(aspect * 600),
		Height:    600,
	}
}
