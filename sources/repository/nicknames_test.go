package repository

import (
	"context"
	"testing"
	"time"

	"chatmesh/sources/metrics"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

type fakeNickStore struct {
	nicks    map[uuid.UUID]string
	getCalls int
}

func (s *fakeNickStore) Get(ctx context.Context, id uuid.UUID) (string, error) {
	s.getCalls++
	preset, ok := s.nicks[id]
	if !ok {
		return "", ErrNicknameNotFound
	}
	return preset, nil
}

func (s *fakeNickStore) Set(ctx context.Context, id uuid.UUID, preset string) error {
	s.nicks[id] = preset
	return nil
}

func (s *fakeNickStore) Remove(ctx context.Context, id uuid.UUID) error {
	delete(s.nicks, id)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testNicknamesRepository(store NickStore, clock *fakeClock) (*NicknamesRepository, *tracing.Logger) {
	log := tracing.NewConsoleLogger()
	return newNicknamesRepository(store, func() time.Time { return clock.now }, metrics.NewMetricsService(log)), log
}

func TestNicknameSetThenGetSkipsStore(t *testing.T) {
	store := &fakeNickStore{nicks: map[uuid.UUID]string{}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	repo, log := testNicknamesRepository(store, clock)

	id := uuid.New()
	preset := texting.NickPreset{Format: "<color:red><username></color:red>"}
	if err := repo.Set(log, id, preset); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.nicks[id] != preset.Format {
		t.Error("set did not write through to the store")
	}

	got, ok, err := repo.Get(log, id)
	if err != nil || !ok || got != preset {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}
	if store.getCalls != 0 {
		t.Errorf("fresh cache entry still caused %d store queries", store.getCalls)
	}
}

func TestNicknameExpiresAfterTTL(t *testing.T) {
	store := &fakeNickStore{nicks: map[uuid.UUID]string{}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	repo, log := testNicknamesRepository(store, clock)

	id := uuid.New()
	preset := texting.NickPreset{Format: "<rainbow>TheBoss</rainbow>"}
	if err := repo.Set(log, id, preset); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.advance(86400*time.Second + time.Second)

	got, ok, err := repo.Get(log, id)
	if err != nil || !ok || got != preset {
		t.Fatalf("Get() after expiry = %v, %v, %v", got, ok, err)
	}
	if store.getCalls != 1 {
		t.Errorf("expired entry caused %d store queries, expected exactly 1", store.getCalls)
	}

	// Re-populated: the next read is served from the cache again.
	if _, _, err := repo.Get(log, id); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if store.getCalls != 1 {
		t.Errorf("re-populated entry caused %d store queries, expected 1", store.getCalls)
	}
}

func TestNicknameAbsentIsMissNotError(t *testing.T) {
	store := &fakeNickStore{nicks: map[uuid.UUID]string{}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	repo, log := testNicknamesRepository(store, clock)

	_, ok, err := repo.Get(log, uuid.New())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("absent nickname should be a miss")
	}
}

func TestNicknameRemoveDropsCacheAndStore(t *testing.T) {
	store := &fakeNickStore{nicks: map[uuid.UUID]string{}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	repo, log := testNicknamesRepository(store, clock)

	id := uuid.New()
	if err := repo.Set(log, id, texting.NickPreset{Format: "x"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Remove(log, id); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, ok := store.nicks[id]; ok {
		t.Error("remove did not delete from the store")
	}
	if _, ok, _ := repo.Get(log, id); ok {
		t.Error("remove did not drop the cache entry")
	}
}

func TestNicknameExpiredEntriesSweptOnWrite(t *testing.T) {
	store := &fakeNickStore{nicks: map[uuid.UUID]string{}}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	repo, log := testNicknamesRepository(store, clock)

	stale := uuid.New()
	if err := repo.Set(log, stale, texting.NickPreset{Format: "old"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.advance(86401 * time.Second)
	if err := repo.Set(log, uuid.New(), texting.NickPreset{Format: "new"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok := repo.cache.Load(stale); ok {
		t.Error("expired entry survived a cache write sweep")
	}
}
