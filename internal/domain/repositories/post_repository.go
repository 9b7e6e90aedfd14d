package repositories

import (
	"context"

	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
)

// CarPostRepository defines car listing data operations
type CarPostRepository interface {
	Create(ctx context.Context, post *entities.CarPost) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.CarPost, error)
	// UpdateImageURLs replaces the stored image URL list (second phase of the
	// two-phase listing write).
	UpdateImageURLs(ctx context.Context, id uuid.UUID, urls []string) error
	MarkSold(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*entities.CarPost, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.CarPost, error)
	CountAll(ctx context.Context) (int64, error)
	CountSold(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// FileRepository defines stored image operations
type FileRepository interface {
	Put(ctx context.Context, file *entities.FileObject) error
	Get(ctx context.Context, id uuid.UUID) (*entities.FileObject, error)
}
