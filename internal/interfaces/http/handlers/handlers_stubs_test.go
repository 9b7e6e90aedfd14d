package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/usecases"
	"qcars.backend/pkg/jwt"
)

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (uowStub) DoSerialized(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type userRepoStub struct {
	users map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return domainerrors.ErrAlreadyExists
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(_ context.Context, user *entities.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, status entities.AccountStatus) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.Status = status
	return nil
}

func (s *userRepoStub) UpdateRole(_ context.Context, id uuid.UUID, role entities.UserRole) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.Role = role
	return nil
}

func (s *userRepoStub) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := s.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *userRepoStub) CountAll(context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *userRepoStub) CountByStatus(_ context.Context, status entities.AccountStatus) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *userRepoStub) List(_ context.Context, search string) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(s.users))
	for _, u := range s.users {
		if search == "" || strings.Contains(u.Name, search) || strings.Contains(u.Email, search) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

type resetRepoStub struct {
	tokens map[string]uuid.UUID
	users  *userRepoStub
}

func newResetRepoStub(users *userRepoStub) *resetRepoStub {
	return &resetRepoStub{tokens: map[string]uuid.UUID{}, users: users}
}

func (s *resetRepoStub) Create(_ context.Context, userID uuid.UUID, token string) error {
	s.tokens[token] = userID
	return nil
}

func (s *resetRepoStub) GetUserByToken(ctx context.Context, token string) (*entities.User, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return s.users.GetByID(ctx, userID)
}

func (s *resetRepoStub) MarkUsed(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

type settingsRepoStub struct {
	paymentsRequired bool
}

func (s *settingsRepoStub) PaymentsRequired(context.Context) (bool, error) {
	return s.paymentsRequired, nil
}

func (s *settingsRepoStub) SetPaymentsRequired(_ context.Context, value bool) error {
	s.paymentsRequired = value
	return nil
}

type postRepoStub struct {
	posts map[uuid.UUID]*entities.CarPost
}

func newPostRepoStub() *postRepoStub {
	return &postRepoStub{posts: map[uuid.UUID]*entities.CarPost{}}
}

func (s *postRepoStub) Create(_ context.Context, post *entities.CarPost) error {
	s.posts[post.ID] = post
	return nil
}

func (s *postRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.CarPost, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *postRepoStub) UpdateImageURLs(_ context.Context, id uuid.UUID, urls []string) error {
	p, ok := s.posts[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.ImageURLs = urls
	return nil
}

func (s *postRepoStub) MarkSold(_ context.Context, id uuid.UUID) error {
	p, ok := s.posts[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.Sold = true
	return nil
}

func (s *postRepoStub) List(_ context.Context, search string, limit, offset int) ([]*entities.CarPost, int64, error) {
	out := make([]*entities.CarPost, 0, len(s.posts))
	for _, p := range s.posts {
		if search == "" || strings.Contains(p.Title, search) || strings.Contains(p.Model, search) {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *postRepoStub) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entities.CarPost, error) {
	out := make([]*entities.CarPost, 0)
	for _, p := range s.posts {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *postRepoStub) CountAll(context.Context) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *postRepoStub) CountSold(context.Context) (int64, error) {
	var n int64
	for _, p := range s.posts {
		if p.Sold {
			n++
		}
	}
	return n, nil
}

func (s *postRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.posts, id)
	return nil
}

type fileRepoStub struct {
	files map[uuid.UUID]*entities.FileObject
}

func newFileRepoStub() *fileRepoStub {
	return &fileRepoStub{files: map[uuid.UUID]*entities.FileObject{}}
}

func (s *fileRepoStub) Put(_ context.Context, file *entities.FileObject) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	s.files[file.ID] = file
	return nil
}

func (s *fileRepoStub) Get(_ context.Context, id uuid.UUID) (*entities.FileObject, error) {
	f, ok := s.files[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return f, nil
}

// handlerEnv wires handlers over in-memory stubs for end-to-end style tests
type handlerEnv struct {
	userRepo     *userRepoStub
	settingsRepo *settingsRepoStub
	postRepo     *postRepoStub
	fileRepo     *fileRepoStub

	auth  *AuthHandler
	posts *PostHandler
	admin *AdminHandler
	files *FileHandler
}

func newHandlerEnv(paymentsRequired bool) *handlerEnv {
	userRepo := newUserRepoStub()
	settingsRepo := &settingsRepoStub{paymentsRequired: paymentsRequired}
	postRepo := newPostRepoStub()
	fileRepo := newFileRepoStub()

	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	authUsecase := usecases.NewAuthUsecase(userRepo, newResetRepoStub(userRepo), settingsRepo, uowStub{}, jwtService)
	accountUsecase := usecases.NewAccountUsecase(userRepo, settingsRepo, postRepo, nil)
	postUsecase := usecases.NewPostUsecase(postRepo, fileRepo, accountUsecase)

	return &handlerEnv{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		postRepo:     postRepo,
		fileRepo:     fileRepo,
		auth:         NewAuthHandler(authUsecase, nil, time.Hour),
		posts:        NewPostHandler(postUsecase, authUsecase),
		admin:        NewAdminHandler(accountUsecase, authUsecase),
		files:        NewFileHandler(postUsecase),
	}
}

func (e *handlerEnv) addUser(role entities.UserRole, status entities.AccountStatus) *entities.User {
	u := &entities.User{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@qcars.pk",
		Name:     "Test Showroom",
		Role:     role,
		Status:   status,
		JoinedAt: time.Now(),
	}
	e.userRepo.users[u.ID] = u
	return u
}
