package models

import "time"

// Message is one row of the append-only message log. Rows are immutable:
// no edit, no delete. The autoincrement ID strictly follows insertion
// order and is the tie-break when two rows share a timestamp.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	Sender    string    `gorm:"size:64;not null;index:idx_messages_sender"`
	Receiver  string    `gorm:"size:64;not null;index:idx_messages_receiver"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}
