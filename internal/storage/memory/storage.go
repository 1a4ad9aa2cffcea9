package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/newsfeed/models"
)

type likeKey struct {
	userID uint
	postID uint
}

// Storage хранит все сущности в памяти под одним мьютексом,
// чтобы каскадное удаление поста или пользователя было атомарным.
// Реализует user.UserStorage, post.PostStorage, comment.CommentStorage и like.LikeStorage.
type Storage struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	likes    map[likeKey]*models.Like

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	nextLikeID    uint

	now func() time.Time
}

func NewStorage() *Storage {
	return &Storage{
		users:         make(map[uint]*models.User),
		posts:         make(map[uint]*models.Post),
		comments:      make(map[uint]*models.Comment),
		likes:         make(map[likeKey]*models.Like),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		nextLikeID:    1,
		now:           time.Now,
	}
}

// deletePostLocked удаляет пост, его комментарии и лайки; s.mu должен быть захвачен
func (s *Storage) deletePostLocked(postID uint) {
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	for key := range s.likes {
		if key.postID == postID {
			delete(s.likes, key)
		}
	}
	delete(s.posts, postID)
}

// newestFirst: порядок выдачи списков: created_at desc, id desc
func newestFirst(aCreated, bCreated time.Time, aID, bID uint) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return aID > bID
}

func sortPosts(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return newestFirst(posts[i].CreatedAt, posts[j].CreatedAt, posts[i].ID, posts[j].ID)
	})
}

func sortComments(comments []*models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		return newestFirst(comments[i].CreatedAt, comments[j].CreatedAt, comments[i].ID, comments[j].ID)
	})
}

func sortLikes(likes []*models.Like) {
	sort.Slice(likes, func(i, j int) bool {
		return newestFirst(likes[i].CreatedAt, likes[j].CreatedAt, likes[i].ID, likes[j].ID)
	})
}
