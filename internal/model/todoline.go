package model

import "time"

// Todoline is a personal task. Only its creator (or an admin) may see it.
type Todoline struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	UserID      *uint      `json:"-" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (t *Todoline) ResourceKind() ResourceKind { return KindTodoline }

func (t *Todoline) OwnerID() *uint { return ownerOf(t.UserID) }
