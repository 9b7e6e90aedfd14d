package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"qcars.backend/internal/domain/entities"
	domainerrors "qcars.backend/internal/domain/errors"
	"qcars.backend/internal/interfaces/http/middleware"
	"qcars.backend/internal/interfaces/http/response"
	"qcars.backend/internal/usecases"
)

// maxImageBytes caps a single uploaded image at 10 MB
const maxImageBytes = 10 << 20

// PostHandler handles car listing endpoints
type PostHandler struct {
	postUsecase *usecases.PostUsecase
	authUsecase *usecases.AuthUsecase
}

// NewPostHandler creates a new post handler
func NewPostHandler(postUsecase *usecases.PostUsecase, authUsecase *usecases.AuthUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		authUsecase: authUsecase,
	}
}

// currentUser resolves the authenticated account from the request context.
// Capability checks need the live status, not the one baked into the token.
func currentUser(c *gin.Context, authUsecase *usecases.AuthUsecase) (*entities.User, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}
	return authUsecase.GetUserByID(c.Request.Context(), userID)
}

// CreatePost creates a car listing
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateCarPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), user, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"post": post})
}

// ListPosts lists car listings with optional search and pagination
// GET /api/v1/posts?search=&page=&limit=
func (h *PostHandler) ListPosts(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, meta, err := h.postUsecase.ListPosts(c.Request.Context(), user, c.Query("search"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": meta,
	})
}

// GetPost fetches one listing
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid post ID"))
		return
	}

	post, err := h.postUsecase.GetPost(c.Request.Context(), user, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

// MyPosts lists the caller's own listings
// GET /api/v1/posts/mine
func (h *PostHandler) MyPosts(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, err := h.postUsecase.ListByOwner(c.Request.Context(), user, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// AttachImages uploads listing images from a multipart form
// POST /api/v1/posts/:id/images
func (h *PostHandler) AttachImages(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid post ID"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Expected multipart form"))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		response.Error(c, domainerrors.BadRequest("No images provided"))
		return
	}

	uploads := make([]*usecases.ImageUpload, 0, len(files))
	for _, file := range files {
		upload, err := readImage(file)
		if err != nil {
			response.Error(c, err)
			return
		}
		uploads = append(uploads, upload)
	}

	post, err := h.postUsecase.AttachImages(c.Request.Context(), user, postID, uploads)
	if err != nil {
		// Partial success still reports the listing state so the client
		// knows which images made it.
		if post != nil && len(post.ImageURLs) > 0 {
			response.Success(c, http.StatusMultiStatus, gin.H{
				"post":  post,
				"error": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

func readImage(file *multipart.FileHeader) (*usecases.ImageUpload, error) {
	if file.Size > maxImageBytes {
		return nil, domainerrors.BadRequest("Image exceeds the 10MB size limit")
	}

	src, err := file.Open()
	if err != nil {
		return nil, domainerrors.BadRequest("Unreadable image upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, domainerrors.BadRequest("Unreadable image upload")
	}
	if len(data) > maxImageBytes {
		return nil, domainerrors.BadRequest("Image exceeds the 10MB size limit")
	}

	return &usecases.ImageUpload{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// MarkSold flags a listing as sold
// POST /api/v1/posts/:id/sold
func (h *PostHandler) MarkSold(c *gin.Context) {
	user, err := currentUser(c, h.authUsecase)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid post ID"))
		return
	}

	post, err := h.postUsecase.MarkSold(c.Request.Context(), user, postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}
