package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/infrastructure/models"
)

// CarPostRepository implements car listing data operations
type CarPostRepository struct {
	db *gorm.DB
}

// NewCarPostRepository creates a new car post repository
func NewCarPostRepository(db *gorm.DB) *CarPostRepository {
	return &CarPostRepository{db: db}
}

func (r *CarPostRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new listing record. Image URLs are attached afterwards via
// UpdateImageURLs once the uploads finish.
func (r *CarPostRepository) Create(ctx context.Context, post *entities.CarPost) error {
	urls, err := encodeImageURLs(post.ImageURLs)
	if err != nil {
		return err
	}

	m := &models.CarPost{
		ID:          post.ID,
		OwnerID:     post.OwnerID,
		Title:       post.Title,
		Model:       post.Model,
		Condition:   string(post.Condition),
		Price:       post.Price,
		Description: post.Description,
		ImageURLs:   urls,
		Sold:        post.Sold,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}

	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	post.ID = m.ID
	return nil
}

// GetByID gets a listing by ID
func (r *CarPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CarPost, error) {
	var m models.CarPost
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// UpdateImageURLs replaces the stored image URL list
func (r *CarPostRepository) UpdateImageURLs(ctx context.Context, id uuid.UUID, urls []string) error {
	encoded, err := encodeImageURLs(urls)
	if err != nil {
		return err
	}

	result := r.conn(ctx).Model(&models.CarPost{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_urls": encoded,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkSold flags a listing as sold
func (r *CarPostRepository) MarkSold(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Model(&models.CarPost{}).Where("id = ?", id).Updates(map[string]interface{}{
		"sold":       true,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists listings newest first with optional title/model search
func (r *CarPostRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.CarPost, int64, error) {
	query := r.conn(ctx).Model(&models.CarPost{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("title LIKE ? OR model LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var postModels []models.CarPost
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts, err := r.toEntities(postModels)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByOwner lists an account's listings newest first
func (r *CarPostRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.CarPost, error) {
	var postModels []models.CarPost
	err := r.conn(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(postModels)
}

// CountAll counts live listings
func (r *CarPostRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.CarPost{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSold counts live listings marked as sold
func (r *CarPostRepository) CountSold(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn(ctx).Model(&models.CarPost{}).Where("sold = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SoftDelete soft deletes a listing
func (r *CarPostRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.CarPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CarPostRepository) toEntities(postModels []models.CarPost) ([]*entities.CarPost, error) {
	var posts []*entities.CarPost
	for _, m := range postModels {
		model := m
		post, err := r.toEntity(&model)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *CarPostRepository) toEntity(m *models.CarPost) (*entities.CarPost, error) {
	urls, err := decodeImageURLs(m.ImageURLs)
	if err != nil {
		return nil, err
	}

	return &entities.CarPost{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Model:       m.Model,
		Condition:   entities.CarCondition(m.Condition),
		Price:       m.Price,
		Description: m.Description,
		ImageURLs:   urls,
		Sold:        m.Sold,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func encodeImageURLs(urls []string) (string, error) {
	if len(urls) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeImageURLs(encoded string) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(encoded), &urls); err != nil {
		return nil, err
	}
	return urls, nil
}
