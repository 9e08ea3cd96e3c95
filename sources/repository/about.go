package repository

import (
	"context"
	"errors"

	"chatmesh/sources/persistence/entities"
	"chatmesh/sources/platform"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AboutRepository struct {
	db *gorm.DB
}

func NewAboutRepository(db *gorm.DB) *AboutRepository {
	return &AboutRepository{db: db}
}

func (x *AboutRepository) Get(logger *tracing.Logger, id uuid.UUID) (string, bool, error) {
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var about entities.About
	err := x.db.WithContext(ctx).First(&about, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		logger.E("Failed to get about", tracing.InnerError, err)
		return "", false, err
	}

	return about.About, true, nil
}

func (x *AboutRepository) Set(logger *tracing.Logger, id uuid.UUID, text string) error {
	defer tracing.ProfilePoint(logger, "About set completed", "repository.about.set", tracing.UserId, id)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	about := &entities.About{UserID: id, About: text}
	err := x.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"about"}),
	}).Create(about).Error
	if err != nil {
		logger.E("Failed to set about", tracing.InnerError, err)
		return err
	}

	logger.I("About set", tracing.UserId, id)
	return nil
}
