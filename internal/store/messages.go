package store

import (
	"fmt"
	"time"

	"github.com/Ron-Caster/POP-Messenger/internal/models"

	"gorm.io/gorm"
)

// Appended is notified after each committed insert. The stream package's
// Notifier satisfies it; a nil wakeup is allowed.
type Appended interface {
	Wake()
}

// Messages is the append-only message log. Rows get a store-assigned
// autoincrement id and UTC timestamp; both queries order by
// (created_at, id) so equal timestamps fall back to insertion order.
type Messages struct {
	db     *gorm.DB
	wakeup Appended
}

func NewMessages(db *gorm.DB, wakeup Appended) *Messages {
	return &Messages{db: db, wakeup: wakeup}
}

// Append inserts a message. The receiver is not required to exist: the
// log has no foreign key on usernames, matching the conversation model
// where a row belongs to the pair, not to either account.
func (s *Messages) Append(sender, receiver, body string) (*models.Message, error) {
	msg := models.Message{
		Sender:    sender,
		Receiver:  receiver,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	if s.wakeup != nil {
		s.wakeup.Wake()
	}
	return &msg, nil
}

// Since returns every message involving viewer with id > afterID, in
// ascending (created_at, id) order. This is the stream poll query.
func (s *Messages) Since(viewer string, afterID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("id > ? AND (sender = ? OR receiver = ?)", afterID, viewer, viewer).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("query since: %w", err)
	}
	return msgs, nil
}

// Conversation returns all messages exchanged between exactly this pair,
// in ascending (created_at, id) order.
func (s *Messages) Conversation(userA, userB string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	return msgs, nil
}
