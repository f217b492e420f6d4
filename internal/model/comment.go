package model

import "time"

// Comment is a reader reply attached to a Post.
type Comment struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	PostID    *uint      `json:"post_id" gorm:"index"`
	UserID    *uint      `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	// Relations
	Post *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

func (c *Comment) ResourceKind() ResourceKind { return KindComment }

func (c *Comment) OwnerID() *uint { return ownerOf(c.UserID) }
