package repository

import (
	"context"
	"testing"

	"chatmesh/sources/metrics"
	"chatmesh/sources/persistence/entities"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

type fakeIdentityStore struct {
	users    map[uuid.UUID]string
	allCalls int
}

func (s *fakeIdentityStore) All(ctx context.Context) ([]entities.User, error) {
	s.allCalls++
	users := make([]entities.User, 0, len(s.users))
	for id, username := range s.users {
		users = append(users, entities.User{ID: id, Username: username})
	}
	return users, nil
}

func (s *fakeIdentityStore) Upsert(ctx context.Context, id uuid.UUID, username string) error {
	s.users[id] = username
	return nil
}

func testIdentityRepository(store IdentityStore) (*IdentityRepository, *tracing.Logger) {
	log := tracing.NewConsoleLogger()
	return newIdentityRepository(store, metrics.NewMetricsService(log)), log
}

func TestIdentityLookupsAreSnapshotReads(t *testing.T) {
	steve := uuid.New()
	store := &fakeIdentityStore{users: map[uuid.UUID]string{steve: "steve"}}
	repo, log := testIdentityRepository(store)

	if _, ok := repo.UsernameByID(steve); ok {
		t.Fatal("lookup before refresh should miss, not hit the store")
	}
	if store.allCalls != 0 {
		t.Fatalf("lookup performed %d store scans, expected 0", store.allCalls)
	}

	if err := repo.Refresh(log); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	username, ok := repo.UsernameByID(steve)
	if !ok || username != "steve" {
		t.Errorf("UsernameByID() = %q, %v", username, ok)
	}
	id, ok := repo.IDByUsername("steve")
	if !ok || id != steve {
		t.Errorf("IDByUsername() = %v, %v", id, ok)
	}
}

func TestIdentityUnknownIsExplicitMiss(t *testing.T) {
	repo, log := testIdentityRepository(&fakeIdentityStore{users: map[uuid.UUID]string{}})
	if err := repo.Refresh(log); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if _, ok := repo.UsernameByID(uuid.New()); ok {
		t.Error("unknown id should be an explicit miss")
	}
	if _, ok := repo.IDByUsername("nobody"); ok {
		t.Error("unknown username should be an explicit miss")
	}
}

func TestIdentityUpsertWritesThroughAndRefreshes(t *testing.T) {
	store := &fakeIdentityStore{users: map[uuid.UUID]string{}}
	repo, log := testIdentityRepository(store)

	alex := uuid.New()
	if err := repo.Upsert(log, alex, "alex"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if store.users[alex] != "alex" {
		t.Error("upsert did not write through to the store")
	}
	if username, ok := repo.UsernameByID(alex); !ok || username != "alex" {
		t.Errorf("UsernameByID() after upsert = %q, %v", username, ok)
	}

	// A username change replaces both directions atomically.
	if err := repo.Upsert(log, alex, "alexis"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if _, ok := repo.IDByUsername("alex"); ok {
		t.Error("stale username still resolves after rename")
	}
	if id, ok := repo.IDByUsername("alexis"); !ok || id != alex {
		t.Errorf("IDByUsername() after rename = %v, %v", id, ok)
	}
}

func TestIdentityResolve(t *testing.T) {
	steve := uuid.New()
	store := &fakeIdentityStore{users: map[uuid.UUID]string{steve: "steve"}}
	repo, log := testIdentityRepository(store)
	if err := repo.Refresh(log); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if id, ok := repo.Resolve("steve"); !ok || id != steve {
		t.Errorf("Resolve(username) = %v, %v", id, ok)
	}
	if id, ok := repo.Resolve(steve.String()); !ok || id != steve {
		t.Errorf("Resolve(id literal) = %v, %v", id, ok)
	}
	if _, ok := repo.Resolve("ghost"); ok {
		t.Error("Resolve(unknown) should miss")
	}
}
