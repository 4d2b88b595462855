package domain

import (
	"time"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string    `gorm:"type:varchar(36);primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	PostID    string    `gorm:"type:varchar(36);index;not null"`
	Post      PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (CommentModel) TableName() string { return "comments" }

// LikeModel is the GORM model for the post_likes join table.
// The composite unique index guarantees a user likes a post at most once.
type LikeModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_post_user"`
	Post      PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_post_user"`
	User      UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikeModel) TableName() string { return "post_likes" }

// FollowModel is the GORM model for the follows table.
// The composite unique index guarantees one edge per ordered pair.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following"`
	Follower    UserModel `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_following;index"`
	Following   UserModel `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID          string     `gorm:"type:varchar(36);primaryKey"`
	RecipientID string     `gorm:"type:varchar(36);index;not null"`
	Recipient   UserModel  `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	SenderID    string     `gorm:"type:varchar(36);not null"`
	Sender      UserModel  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Type        string     `gorm:"type:varchar(20);not null"`
	PostID      *string    `gorm:"type:varchar(36)"`
	Post        *PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	IsRead      bool       `gorm:"default:false;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// ProfileModel is the GORM model for the profiles table.
// The unique index on UserID guarantees at most one profile per user.
type ProfileModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	User      UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Bio       string    `gorm:"type:text"`
	AvatarKey string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ProfileModel) TableName() string { return "profiles" }

// AllModels lists every model for auto-migration, in FK dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&PostModel{},
		&CommentModel{},
		&LikeModel{},
		&FollowModel{},
		&NotificationModel{},
		&ProfileModel{},
	}
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// ToDomain converts PostModel to domain Post. The like count is filled in
// by the repository.
func (m *PostModel) ToDomain() *Post {
	return &Post{
		ID:             m.ID,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomain converts CommentModel to domain Comment.
func (m *CommentModel) ToDomain() *Comment {
	return &Comment{
		ID:             m.ID,
		PostID:         m.PostID,
		AuthorID:       m.AuthorID,
		AuthorUsername: m.Author.Username,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomain converts NotificationModel to domain Notification.
func (m *NotificationModel) ToDomain() *Notification {
	n := &Notification{
		ID:             m.ID,
		RecipientID:    m.RecipientID,
		SenderID:       m.SenderID,
		SenderUsername: m.Sender.Username,
		Type:           m.Type,
		PostID:         m.PostID,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.Post != nil {
		preview := TruncateContent(m.Post.Content, NotificationPreviewLen)
		n.PostContent = &preview
	}
	return n
}

// ToDomain converts ProfileModel to domain Profile.
func (m *ProfileModel) ToDomain() *Profile {
	return &Profile{
		ID:        m.ID,
		UserID:    m.UserID,
		Bio:       m.Bio,
		AvatarKey: m.AvatarKey,
		CreatedAt: m.CreatedAt,
	}
}
