package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/infrastructure/models"
)

// FileRepository implements stored image operations
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Put stores an uploaded file
func (r *FileRepository) Put(ctx context.Context, file *entities.FileObject) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	m := &models.FileObject{
		ID:          file.ID,
		Bucket:      file.Bucket,
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
		CreatedAt:   file.CreatedAt,
	}
	return r.conn(ctx).Create(m).Error
}

// Get fetches a stored file by ID
func (r *FileRepository) Get(ctx context.Context, id uuid.UUID) (*entities.FileObject, error) {
	var m models.FileObject
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.FileObject{
		ID:          m.ID,
		Bucket:      m.Bucket,
		Name:        m.Name,
		ContentType: m.ContentType,
		Data:        m.Data,
		CreatedAt:   m.CreatedAt,
	}, nil
}
