package entities

import (
	"time"

	"github.com/google/uuid"
)

type (
	// User is the persistent id<->username record behind the identity cache.
	// The id is the stable player identifier; the username may change over time.
	User struct {
		ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
		Username string    `gorm:"size:16;uniqueIndex;not null" json:"username"`
	}

	Nick struct {
		UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
		Preset string    `gorm:"size:2048;not null" json:"preset"`
	}

	MailMessage struct {
		ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
		Timestamp int64     `gorm:"not null" json:"timestamp"`
		Sender    uuid.UUID `gorm:"type:uuid;not null;index" json:"sender"`
		Recipient uuid.UUID `gorm:"type:uuid;not null;index" json:"recipient"`
		Read      bool      `gorm:"not null;default:false" json:"read"`
		Message   string    `gorm:"size:512;not null" json:"message"`
	}

	About struct {
		UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
		About  string    `gorm:"size:512;not null" json:"about"`

		UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	}
)

func (User) TableName() string        { return "mesh_users" }
func (Nick) TableName() string        { return "mesh_nicks" }
func (MailMessage) TableName() string { return "mesh_mail" }
func (About) TableName() string       { return "mesh_about" }
