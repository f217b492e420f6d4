package model

import "time"

// Post represents a blog article.
type Post struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"size:255;not null"`
	Text      string     `json:"text" gorm:"type:text;not null"`
	Picture   *string    `json:"picture" gorm:"type:text"`
	Links     *string    `json:"links" gorm:"size:255"`
	UserID    *uint      `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`

	// Relations
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (p *Post) ResourceKind() ResourceKind { return KindPost }

func (p *Post) OwnerID() *uint { return ownerOf(p.UserID) }
