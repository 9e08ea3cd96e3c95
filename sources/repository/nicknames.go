package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"chatmesh/sources/metrics"
	"chatmesh/sources/platform"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nicknameCacheTTL is how long a cached nickname stays live; entries older than
// this are treated as absent and re-fetched from the store on next access.
const nicknameCacheTTL = 86400 * time.Second

type cachedNick struct {
	preset   texting.NickPreset
	cachedAt time.Time
}

// NicknamesRepository is the per-user display-name cache: write-through on set,
// lazy TTL expiry on get, opportunistic sweep of expired entries on any cache
// write. Entries are updated per key; there is no cache-wide lock.
type NicknamesRepository struct {
	store   NickStore
	clock   func() time.Time
	metrics *metrics.MetricsService
	cache   sync.Map // uuid.UUID -> cachedNick
}

func NewNicknamesRepository(db *gorm.DB, metrics *metrics.MetricsService) *NicknamesRepository {
	return newNicknamesRepository(&gormNickStore{db: db}, time.Now, metrics)
}

func newNicknamesRepository(store NickStore, clock func() time.Time, metrics *metrics.MetricsService) *NicknamesRepository {
	return &NicknamesRepository{store: store, clock: clock, metrics: metrics}
}

// Get returns the live cached preset if present, otherwise queries the store
// and caches a hit. A user without a nickname is an explicit miss, not an error.
func (x *NicknamesRepository) Get(logger *tracing.Logger, id uuid.UUID) (texting.NickPreset, bool, error) {
	if entry, ok := x.cache.Load(id); ok {
		cached := entry.(cachedNick)
		if x.clock().Sub(cached.cachedAt) < nicknameCacheTTL {
			x.metrics.RecordNicknameCache("hit")
			return cached.preset, true, nil
		}
	}

	defer tracing.ProfilePoint(logger, "Nickname fetched from store", "repository.nicknames.get", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	x.metrics.RecordNicknameCache("miss")
	format, err := x.store.Get(ctx, id)
	if errors.Is(err, ErrNicknameNotFound) {
		return texting.NickPreset{}, false, nil
	}
	if err != nil {
		logger.E("Failed to get nickname", tracing.InnerError, err)
		return texting.NickPreset{}, false, err
	}

	preset := texting.NickPreset{Format: format}
	x.cacheNickname(id, preset)
	return preset, true, nil
}

func (x *NicknamesRepository) Set(logger *tracing.Logger, id uuid.UUID, preset texting.NickPreset) error {
	defer tracing.ProfilePoint(logger, "Nickname set completed", "repository.nicknames.set", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	if err := x.store.Set(ctx, id, preset.Format); err != nil {
		logger.E("Failed to set nickname", tracing.InnerError, err)
		return err
	}

	x.cacheNickname(id, preset)
	logger.I("Nickname set", tracing.UserId, id)
	return nil
}

func (x *NicknamesRepository) Remove(logger *tracing.Logger, id uuid.UUID) error {
	defer tracing.ProfilePoint(logger, "Nickname remove completed", "repository.nicknames.remove", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	if err := x.store.Remove(ctx, id); err != nil {
		logger.E("Failed to remove nickname", tracing.InnerError, err)
		return err
	}

	x.cache.Delete(id)
	logger.I("Nickname removed", tracing.UserId, id)
	return nil
}

// cacheNickname stores a fresh entry and sweeps everything expired, so stale
// entries do not pile up between reads.
func (x *NicknamesRepository) cacheNickname(id uuid.UUID, preset texting.NickPreset) {
	now := x.clock()
	x.cache.Range(func(key, value any) bool {
		if now.Sub(value.(cachedNick).cachedAt) >= nicknameCacheTTL {
			x.cache.Delete(key)
		}
		return true
	})
	x.cache.Store(id, cachedNick{preset: preset, cachedAt: now})
}
