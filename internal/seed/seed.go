// Package seed fills the stores with development fixtures.
package seed

import (
	"context"
	"strings"
	"time"

	"github.com/VitaminP8/newsfeed/internal/apperr"
	"github.com/VitaminP8/newsfeed/internal/auth"
	"github.com/VitaminP8/newsfeed/internal/newsfeed"
	"github.com/VitaminP8/newsfeed/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	AdminUsername = "admin"
	adminPassword = "admin"
	mockPassword  = "password"
)

type mockUser struct {
	username, email, firstName, lastName string
}

var mockUsers = []mockUser{
	{"john_doe", "john@example.com", "John", "Doe"},
	{"jane_smith", "jane@example.com", "Jane", "Smith"},
	{"bob_johnson", "bob@example.com", "Bob", "Johnson"},
	{"alice_williams", "alice@example.com", "Alice", "Williams"},
	{"charlie_brown", "charlie@example.com", "Charlie", "Brown"},
	{"emma_davis", "emma@example.com", "Emma", "Davis"},
	{"michael_wilson", "michael@example.com", "Michael", "Wilson"},
	{"olivia_jones", "olivia@example.com", "Olivia", "Jones"},
}

var postTitles = []string{
	"The Future of Remote Work",
	"10 Must-Read Books of 2025",
	"Healthy Habits for Developers",
	"Tech Trends to Watch",
	"Exploring Machine Learning",
	"The Art of Productivity",
	"Sustainable Living Tips",
	"Travel Destinations for Tech Enthusiasts",
	"Building Better Web Applications",
	"Photography Basics for Beginners",
	"Modern Architecture Marvels",
	"The Science Behind Good Sleep",
	"Understanding Blockchain Technology",
	"Fitness Tips for Busy People",
	"Amazing Space Discoveries",
}

type Options struct {
	Users int
	Posts int
	// MaxComments: верхняя граница комментариев на пост, 0 отключает комментарии
	MaxComments int
	// MaxLikes: верхняя граница лайков на пост
	MaxLikes int
	Clear    bool
}

func DefaultOptions() Options {
	return Options{Users: 8, Posts: 25, MaxComments: 3, MaxLikes: 5}
}

type Result struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

type seeder struct {
	stores newsfeed.Stores
	faker  *gofakeit.Faker
	log    *zap.Logger
	now    time.Time
}

// Run создает фикстуры. Вся случайность берется из faker, поэтому
// одинаковый seed дает одинаковые данные.
func Run(ctx context.Context, stores newsfeed.Stores, opts Options, faker *gofakeit.Faker, log *zap.Logger) (*Result, error) {
	s := &seeder{stores: stores, faker: faker, log: log, now: time.Now()}
	res := &Result{}

	if opts.Clear {
		if err := s.clear(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.ensureAdmin(ctx); err != nil {
		return nil, err
	}

	created, err := s.createUsers(ctx, opts.Users)
	if err != nil {
		return nil, err
	}
	res.Users = created

	users, err := stores.Users.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := 0; i < opts.Posts; i++ {
		post, err := s.createPost(ctx, i, users)
		if err != nil {
			return nil, err
		}
		res.Posts++

		comments, err := s.createComments(ctx, post, users, opts.MaxComments)
		if err != nil {
			return nil, err
		}
		res.Comments += comments

		likes, err := s.createLikes(ctx, post, users, opts.MaxLikes)
		if err != nil {
			return nil, err
		}
		res.Likes += likes
	}

	log.Info("seeding finished",
		zap.Int("users", res.Users),
		zap.Int("posts", res.Posts),
		zap.Int("comments", res.Comments),
		zap.Int("likes", res.Likes),
	)
	return res, nil
}

// clear удаляет все посты (с комментариями и лайками) и всех пользователей, кроме суперпользователей
func (s *seeder) clear(ctx context.Context) error {
	posts, err := s.stores.Posts.GetAllPosts(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := s.stores.Posts.DeletePostByID(ctx, p.ID); err != nil {
			return err
		}
	}

	users, err := s.stores.Users.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.IsSuperuser {
			continue
		}
		if err := s.stores.Users.DeleteUserByID(ctx, u.ID); err != nil {
			return err
		}
	}

	s.log.Info("existing data cleared", zap.Int("posts", len(posts)))
	return nil
}

func (s *seeder) ensureAdmin(ctx context.Context) error {
	_, err := s.stores.Users.GetUserByUsername(ctx, AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	err = s.stores.Users.CreateUser(ctx, &models.User{
		Username:    AdminUsername,
		Email:       "admin@example.com",
		Password:    hash,
		IsSuperuser: true,
	})
	if err != nil {
		return err
	}
	s.log.Info("created admin user")
	return nil
}

// createUsers создает первых n пользователей из фиксированного списка, остальных генерирует
func (s *seeder) createUsers(ctx context.Context, n int) (int, error) {
	hash, err := auth.HashPassword(mockPassword)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := 0; i < n; i++ {
		u := &models.User{Password: hash}
		if i < len(mockUsers) {
			m := mockUsers[i]
			u.Username, u.Email, u.FirstName, u.LastName = m.username, m.email, m.firstName, m.lastName
		} else {
			u.Username = strings.ToLower(s.faker.Username())
			u.Email = s.faker.Email()
			u.FirstName = s.faker.FirstName()
			u.LastName = s.faker.LastName()
		}

		err := s.stores.Users.CreateUser(ctx, u)
		if errors.Is(err, apperr.ErrConflict) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
		s.log.Debug("created user", zap.String("username", u.Username))
	}
	return created, nil
}

func (s *seeder) createPost(ctx context.Context, i int, users []*models.User) (*models.Post, error) {
	var title string
	if i < len(postTitles) {
		title = postTitles[i]
	} else {
		title = strings.TrimRight(s.faker.Sentence(s.faker.Number(4, 8)), ".")
	}

	// в пределах последних 30 дней
	createdAt := s.now.Add(-time.Duration(s.faker.Number(1, 30*24)) * time.Hour)

	post := &models.Post{
		Title:     title,
		Content:   s.faker.Paragraph(s.faker.Number(1, 4), s.faker.Number(3, 6), 12, "\n\n"),
		UserID:    users[s.faker.Number(0, len(users)-1)].ID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := s.stores.Posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.log.Debug("created post", zap.String("title", post.Title), zap.Uint("author", post.UserID))
	return post, nil
}

func (s *seeder) createComments(ctx context.Context, post *models.Post, users []*models.User, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	n := s.faker.Number(0, limit)
	for i := 0; i < n; i++ {
		// комментарий не раньше поста
		age := s.now.Sub(post.CreatedAt)
		createdAt := post.CreatedAt.Add(time.Duration(s.faker.Number(0, int(age/time.Minute))) * time.Minute)

		err := s.stores.Comments.CreateComment(ctx, &models.Comment{
			Content:   s.faker.Sentence(s.faker.Number(5, 15)),
			PostID:    post.ID,
			UserID:    users[s.faker.Number(0, len(users)-1)].ID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		})
		if err != nil {
			return i, err
		}
	}
	return n, nil
}

// createLikes ставит лайки от случайных пользователей; повторы схлопываются хранилищем
func (s *seeder) createLikes(ctx context.Context, post *models.Post, users []*models.User, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	n := s.faker.Number(0, limit)
	for i := 0; i < n; i++ {
		u := users[s.faker.Number(0, len(users)-1)]
		if err := s.stores.Likes.LikePost(ctx, u.ID, post.ID); err != nil {
			return 0, err
		}
	}
	return s.stores.Likes.CountLikesByPost(ctx, post.ID)
}
