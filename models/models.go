package models

import "time"

// Без gorm.Model: удаление жесткое, без soft delete.

type User struct {
	ID          uint   `gorm:"primary_key"`
	Username    string `gorm:"unique_index;not null"`
	Email       string
	FirstName   string
	LastName    string
	Password    string `gorm:"not null"`
	IsSuperuser bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Post struct {
	ID        uint   `gorm:"primary_key"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        uint   `gorm:"primary_key"`
	Content   string `gorm:"type:text"`
	PostID    uint   `gorm:"index;not null"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Like: связь пользователь/пост, пара (user_id, post_id) уникальна.
type Like struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"unique_index:idx_like_user_post;not null"`
	PostID    uint `gorm:"unique_index:idx_like_user_post;index;not null"`
	CreatedAt time.Time
}

// PostPatch: частичное обновление поста, nil означает "не менять".
type PostPatch struct {
	Title   *string
	Content *string
}
