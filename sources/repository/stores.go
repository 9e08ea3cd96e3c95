package repository

import (
	"context"
	"errors"

	"chatmesh/sources/persistence/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdentityStore is the persistent side of the identity cache.
type IdentityStore interface {
	All(ctx context.Context) ([]entities.User, error)
	Upsert(ctx context.Context, id uuid.UUID, username string) error
}

// NickStore is the persistent side of the nickname cache.
type NickStore interface {
	Get(ctx context.Context, id uuid.UUID) (string, error)
	Set(ctx context.Context, id uuid.UUID, preset string) error
	Remove(ctx context.Context, id uuid.UUID) error
}

var ErrNicknameNotFound = errors.New("nickname not found")

type gormIdentityStore struct {
	db *gorm.DB
}

func (s *gormIdentityStore) All(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *gormIdentityStore) Upsert(ctx context.Context, id uuid.UUID, username string) error {
	user := &entities.User{ID: id, Username: username}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username"}),
	}).Create(user).Error
}

type gormNickStore struct {
	db *gorm.DB
}

func (s *gormNickStore) Get(ctx context.Context, id uuid.UUID) (string, error) {
	var nick entities.Nick
	err := s.db.WithContext(ctx).First(&nick, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNicknameNotFound
	}
	if err != nil {
		return "", err
	}
	return nick.Preset, nil
}

func (s *gormNickStore) Set(ctx context.Context, id uuid.UUID, preset string) error {
	nick := &entities.Nick{UserID: id, Preset: preset}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preset"}),
	}).Create(nick).Error
}

func (s *gormNickStore) Remove(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&entities.Nick{}, "user_id = ?", id).Error
}
