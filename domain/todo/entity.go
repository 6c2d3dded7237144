package todo

import (
	"time"
)

// ToDo represents a single to-do item owned by a user.
//
// CompletedAt is non-nil exactly when Complete is true: it is set when an
// item transitions to complete and cleared when it transitions back.
type ToDo struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"index;size:36;not null" json:"user"`
	Content     string     `gorm:"size:30;not null" json:"content"`
	Complete    bool       `gorm:"not null;default:false" json:"complete"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the ToDo entity.
func (ToDo) TableName() string {
	return "todos"
}
