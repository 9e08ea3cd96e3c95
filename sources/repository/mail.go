package repository

import (
	"context"
	"errors"
	"time"

	"chatmesh/sources/persistence/entities"
	"chatmesh/sources/platform"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMailNotFound = errors.New("mail message not found")

type MailRepository struct {
	db *gorm.DB
}

func NewMailRepository(db *gorm.DB) *MailRepository {
	return &MailRepository{db: db}
}

func (x *MailRepository) Insert(logger *tracing.Logger, sender, recipient uuid.UUID, message string) error {
	defer tracing.ProfilePoint(logger, "Mail insert completed", "repository.mail.insert", tracing.UserId, sender)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	item := &entities.MailMessage{
		Timestamp: time.Now().Unix(),
		Sender:    sender,
		Recipient: recipient,
		Message:   message,
	}

	if err := x.db.WithContext(ctx).Create(item).Error; err != nil {
		logger.E("Failed to insert mail", tracing.InnerError, err)
		return err
	}

	logger.I("Mail inserted", tracing.UserId, sender)
	return nil
}

func (x *MailRepository) Mailbox(logger *tracing.Logger, recipient uuid.UUID) ([]entities.MailMessage, error) {
	defer tracing.ProfilePoint(logger, "Mailbox fetched", "repository.mail.mailbox", tracing.UserId, recipient)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var items []entities.MailMessage
	err := x.db.WithContext(ctx).
		Where("recipient = ?", recipient).
		Order("timestamp DESC").
		Find(&items).Error
	if err != nil {
		logger.E("Failed to fetch mailbox", tracing.InnerError, err)
		return nil, err
	}

	return items, nil
}

// Read returns one message addressed to the recipient and marks it read.
func (x *MailRepository) Read(logger *tracing.Logger, recipient uuid.UUID, id int64) (*entities.MailMessage, error) {
	defer tracing.ProfilePoint(logger, "Mail read completed", "repository.mail.read", tracing.UserId, recipient)()
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var item entities.MailMessage
	err := x.db.WithContext(ctx).First(&item, "id = ? AND recipient = ?", id, recipient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMailNotFound
	}
	if err != nil {
		logger.E("Failed to read mail", tracing.InnerError, err)
		return nil, err
	}

	if err := x.db.WithContext(ctx).Model(&entities.MailMessage{}).Where("id = ?", id).Update("read", true).Error; err != nil {
		logger.E("Failed to mark mail read", tracing.InnerError, err)
		return nil, err
	}

	return &item, nil
}

func (x *MailRepository) UnreadCount(logger *tracing.Logger, recipient uuid.UUID) (int64, error) {
	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	var count int64
	err := x.db.WithContext(ctx).Model(&entities.MailMessage{}).
		Where("recipient = ? AND read = false", recipient).
		Count(&count).Error
	if err != nil {
		logger.E("Failed to count unread mail", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}
