package repository

import (
	"context"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"chatmesh/sources/metrics"
	"chatmesh/sources/platform"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// identitySnapshot holds both lookup directions. Snapshots are immutable and
// replaced atomically on refresh, so readers never observe a partial update.
type identitySnapshot struct {
	byID   map[uuid.UUID]string
	byName map[string]uuid.UUID
}

var emptySnapshot = &identitySnapshot{
	byID:   map[uuid.UUID]string{},
	byName: map[string]uuid.UUID{},
}

// IdentityRepository is the bidirectional id<->username cache. Lookups are pure
// map reads against the current snapshot; Refresh replaces the snapshot from a
// full store scan; Upsert writes through and then refreshes.
type IdentityRepository struct {
	store    IdentityStore
	metrics  *metrics.MetricsService
	snapshot atomic.Pointer[identitySnapshot]
}

func NewIdentityRepository(db *gorm.DB, metrics *metrics.MetricsService) *IdentityRepository {
	return newIdentityRepository(&gormIdentityStore{db: db}, metrics)
}

func newIdentityRepository(store IdentityStore, metrics *metrics.MetricsService) *IdentityRepository {
	x := &IdentityRepository{store: store, metrics: metrics}
	x.snapshot.Store(emptySnapshot)
	return x
}

func (x *IdentityRepository) Refresh(logger *tracing.Logger) error {
	defer tracing.ProfilePoint(logger, "Identity cache refreshed", "repository.identity.refresh")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	users, err := x.store.All(ctx)
	if err != nil {
		logger.E("Failed to scan identity store", tracing.InnerError, err)
		return err
	}

	snapshot := &identitySnapshot{
		byID:   make(map[uuid.UUID]string, len(users)),
		byName: make(map[string]uuid.UUID, len(users)),
	}
	for _, user := range users {
		snapshot.byID[user.ID] = user.Username
		snapshot.byName[user.Username] = user.ID
	}

	x.snapshot.Store(snapshot)
	x.metrics.RecordIdentityRefresh()
	logger.I("Identity cache replaced", "entries", len(users))
	return nil
}

func (x *IdentityRepository) Upsert(logger *tracing.Logger, id uuid.UUID, username string) error {
	defer tracing.ProfilePoint(logger, "Identity upsert completed", "repository.identity.upsert", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if err := x.store.Upsert(ctx, id, username); err != nil {
		logger.E("Failed to upsert identity", tracing.InnerError, err)
		return err
	}

	return x.Refresh(logger)
}

// UsernameByID never blocks on I/O: an id the process has not seen yet is an
// explicit miss, not an error.
func (x *IdentityRepository) UsernameByID(id uuid.UUID) (string, bool) {
	username, ok := x.snapshot.Load().byID[id]
	return username, ok
}

func (x *IdentityRepository) IDByUsername(username string) (uuid.UUID, bool) {
	id, ok := x.snapshot.Load().byName[username]
	return id, ok
}

// Resolve accepts either a raw id literal or a username.
func (x *IdentityRepository) Resolve(input string) (uuid.UUID, bool) {
	input = strings.TrimSpace(input)
	if uuidPattern.MatchString(input) {
		id, err := uuid.Parse(input)
		return id, err == nil
	}
	return x.IDByUsername(input)
}

func (x *IdentityRepository) Usernames() []string {
	snapshot := x.snapshot.Load()
	usernames := make([]string, 0, len(snapshot.byName))
	for username := range snapshot.byName {
		usernames = append(usernames, username)
	}
	return usernames
}
