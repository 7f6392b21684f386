package trajectory

import (
	"encoding/json"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"pokergym/common/defaultmap"
	"pokergym/common/linq"
	"pokergym/common/safemap"
	"pokergym/poker"

	"github.com/google/uuid"
)

// HandEpisode is one seat's trajectory for a single hand, stamped with
// its collection time so pruning can evict the oldest hands first.
type HandEpisode struct {
	CreatedAt time.Time
	Episode   *poker.Episode
}

// Collector buffers per-seat episodes keyed by hand id. Writers from
// many game workers add concurrently; a consumer pulls random batches.
type Collector struct {
	buckets    defaultmap.DefaultSafemap[poker.Position, safemap.Safemap[uuid.UUID, *HandEpisode]]
	maxHands   int
	pruneRatio float32

	rng_mu sync.Mutex
	rng    *rand.Rand
}

func NewCollector(maxHands int, pruneRatio float32) *Collector {
	return &Collector{
		buckets: defaultmap.New[poker.Position](func() safemap.Safemap[uuid.UUID, *HandEpisode] {
			return safemap.New[uuid.UUID, *HandEpisode]()
		}),
		maxHands:   maxHands,
		pruneRatio: pruneRatio,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add stores a clone of ep under (position, handID). The caller keeps
// ownership of ep and may reuse it for the next hand.
func (h *Collector) Add(position poker.Position, handID uuid.UUID, ep *poker.Episode) {
	bucket := h.buckets.Get(position)
	bucket.Set(handID, &HandEpisode{
		CreatedAt: time.Now(),
		Episode:   ep.Clone(),
	})
	if bucket.Count() > h.maxHands {
		h.pruneOldHands(position)
	}
}

// Count reports how many hands are buffered for a seat.
func (h *Collector) Count(position poker.Position) int {
	return h.buckets.Get(position).Count()
}

// Decisions reports the total number of buffered decision points for a seat.
func (h *Collector) Decisions(position poker.Position) int {
	n := 0
	h.buckets.Get(position).Foreach(func(_ uuid.UUID, he *HandEpisode) bool {
		n += he.Episode.Len()
		return true
	})
	return n
}

// Batch picks random buffered hands for a seat until at least batchSize
// decision points are collected. Hands without any decision point are
// skipped; returns nil if nothing in the bucket can contribute one.
// Episodes are shared with the buffer and must not be mutated.
func (h *Collector) Batch(position poker.Position, batchSize int) []*poker.Episode {
	bucket := h.buckets.Get(position)

	keys := make([]uuid.UUID, 0, bucket.Count())
	episodes := make(map[uuid.UUID]*poker.Episode, bucket.Count())
	bucket.Foreach(func(id uuid.UUID, he *HandEpisode) bool {
		if he.Episode.Len() == 0 {
			return true
		}
		keys = append(keys, id)
		episodes[id] = he.Episode
		return true
	})
	if len(keys) == 0 {
		return nil
	}

	h.rng_mu.Lock()
	defer h.rng_mu.Unlock()

	batch := make([]*poker.Episode, 0, batchSize)
	collected := 0
	for collected < batchSize {
		key := keys[h.rng.Int31n(int32(len(keys)))]
		ep := episodes[key]
		batch = append(batch, ep)
		collected += ep.Len()
	}
	return batch
}

// Clear drops every buffered hand.
func (h *Collector) Clear() {
	positions := make([]poker.Position, 0)
	h.buckets.Foreach(func(p poker.Position, _ safemap.Safemap[uuid.UUID, *HandEpisode]) bool {
		positions = append(positions, p)
		return true
	})
	for _, p := range positions {
		h.buckets.Delete(p)
	}
}

// Save serializes the buffer to a JSON file.
func (h *Collector) Save(path string) error {
	plain := make(map[poker.Position]map[uuid.UUID]*HandEpisode)
	h.buckets.Foreach(func(p poker.Position, bucket safemap.Safemap[uuid.UUID, *HandEpisode]) bool {
		hands := make(map[uuid.UUID]*HandEpisode, bucket.Count())
		bucket.Foreach(func(id uuid.UUID, he *HandEpisode) bool {
			hands[id] = he
			return true
		})
		plain[p] = hands
		return true
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(plain)
}

// Load replaces the buffer contents from a JSON file written by Save.
func (h *Collector) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	plain := make(map[poker.Position]map[uuid.UUID]*HandEpisode)
	if err := json.NewDecoder(f).Decode(&plain); err != nil {
		return err
	}

	h.Clear()
	for p, hands := range plain {
		bucket := h.buckets.Get(p)
		for id, he := range hands {
			bucket.Set(id, he)
		}
	}
	return nil
}

// pruneOldHands evicts the oldest pruneRatio share of a seat's hands.
func (h *Collector) pruneOldHands(position poker.Position) {
	bucket := h.buckets.Get(position)

	type handEntry struct {
		id        uuid.UUID
		createdAt time.Time
	}
	entries := make(map[uuid.UUID]time.Time, bucket.Count())
	bucket.Foreach(func(id uuid.UUID, he *HandEpisode) bool {
		entries[id] = he.CreatedAt
		return true
	})
	sorted := linq.ToList(entries, func(id uuid.UUID, at time.Time) handEntry {
		return handEntry{id, at}
	})
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].createdAt.Before(sorted[j].createdAt)
	})

	removeCount := int(float32(len(sorted)) * h.pruneRatio)
	for i := 0; i < removeCount; i++ {
		bucket.Delete(sorted[i].id)
	}
}
