package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/domain/repositories"
	"qcars.backend/pkg/utils"
)

const imageBucket = "car_images"

// ImageUpload carries one uploaded image through the attachment phase.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// PostUsecase handles car listing business logic
type PostUsecase struct {
	postRepo repositories.CarPostRepository
	fileRepo repositories.FileRepository
	accounts *AccountUsecase
}

// NewPostUsecase creates a new post usecase
func NewPostUsecase(
	postRepo repositories.CarPostRepository,
	fileRepo repositories.FileRepository,
	accounts *AccountUsecase,
) *PostUsecase {
	return &PostUsecase{
		postRepo: postRepo,
		fileRepo: fileRepo,
		accounts: accounts,
	}
}

// CreatePost creates a listing record for an active account. Images are
// attached afterwards via AttachImages once uploads complete.
func (u *PostUsecase) CreatePost(ctx context.Context, owner *entities.User, input *entities.CreateCarPostInput) (*entities.CarPost, error) {
	if err := u.accounts.Authorize(owner, entities.CapabilityCreateListing); err != nil {
		return nil, err
	}

	condition := entities.CarCondition(input.Condition)
	if !condition.Valid() {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	now := time.Now()
	post := &entities.CarPost{
		ID:          utils.GenerateUUIDv7(),
		OwnerID:     owner.ID,
		Title:       input.Title,
		Model:       input.Model,
		Condition:   condition,
		Price:       input.Price,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AttachImages uploads the images and appends their URLs to the listing.
// More than MaxPostImages in total is rejected outright. Uploads run
// sequentially; on the first failure the URLs stored so far are kept and the
// error is surfaced (no rollback of earlier uploads).
func (u *PostUsecase) AttachImages(ctx context.Context, acting *entities.User, postID uuid.UUID, uploads []*ImageUpload) (*entities.CarPost, error) {
	if err := u.accounts.Authorize(acting, entities.CapabilityCreateListing); err != nil {
		return nil, err
	}

	post, err := u.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != acting.ID && !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}
	if len(post.ImageURLs)+len(uploads) > entities.MaxPostImages {
		return nil, domainerrors.ErrTooManyImages
	}

	urls := append([]string{}, post.ImageURLs...)
	var uploadErr error
	for _, upload := range uploads {
		file := &entities.FileObject{
			ID:          utils.GenerateUUIDv7(),
			Bucket:      imageBucket,
			Name:        upload.Name,
			ContentType: upload.ContentType,
			Data:        upload.Data,
			CreatedAt:   time.Now(),
		}
		if err := u.fileRepo.Put(ctx, file); err != nil {
			uploadErr = err
			break
		}
		urls = append(urls, fmt.Sprintf("/api/v1/files/%s", file.ID))
	}

	if len(urls) > len(post.ImageURLs) {
		if err := u.postRepo.UpdateImageURLs(ctx, postID, urls); err != nil {
			return nil, err
		}
		post.ImageURLs = urls
	}
	if uploadErr != nil {
		return post, uploadErr
	}
	return post, nil
}

// ListPosts lists listings for an active account
func (u *PostUsecase) ListPosts(ctx context.Context, viewer *entities.User, search string, page, limit int) ([]*entities.CarPost, utils.PaginationMeta, error) {
	if err := u.accounts.Authorize(viewer, entities.CapabilityViewListings); err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	params := utils.GetPaginationParams(page, limit)
	posts, total, err := u.postRepo.List(ctx, search, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return posts, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// GetPost fetches one listing for an active account
func (u *PostUsecase) GetPost(ctx context.Context, viewer *entities.User, id uuid.UUID) (*entities.CarPost, error) {
	if err := u.accounts.Authorize(viewer, entities.CapabilityViewListings); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, id)
}

// ListByOwner lists a showroom's own listings
func (u *PostUsecase) ListByOwner(ctx context.Context, viewer *entities.User, ownerID uuid.UUID) ([]*entities.CarPost, error) {
	if err := u.accounts.Authorize(viewer, entities.CapabilityViewListings); err != nil {
		return nil, err
	}
	return u.postRepo.ListByOwner(ctx, ownerID)
}

// MarkSold flags a listing as sold. Owner or admin only.
func (u *PostUsecase) MarkSold(ctx context.Context, acting *entities.User, id uuid.UUID) (*entities.CarPost, error) {
	if err := u.accounts.Authorize(acting, entities.CapabilityViewListings); err != nil {
		return nil, err
	}

	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.OwnerID != acting.ID && !acting.IsAdmin() {
		return nil, domainerrors.ErrForbidden
	}

	if err := u.postRepo.MarkSold(ctx, id); err != nil {
		return nil, err
	}
	post.Sold = true
	return post, nil
}

// GetFile fetches a stored image; listing images are public once uploaded.
func (u *PostUsecase) GetFile(ctx context.Context, id uuid.UUID) (*entities.FileObject, error) {
	return u.fileRepo.Get(ctx, id)
}
