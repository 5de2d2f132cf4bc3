package usecase

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"simple-social/internal/entity"
	"simple-social/internal/repo/persistent"
	"simple-social/pkg/logger"

	"github.com/google/uuid"
)

// uploadTimeout bounds the external storage call so an unresponsive
// provider cannot stall a request forever.
const uploadTimeout = 60 * time.Second

// MediaStorage is satisfied by pkg/s3. It never inspects content; the
// caller classifies image vs video from the declared content type.
type MediaStorage interface {
	UploadFile(ctx context.Context, key string, file io.ReadSeeker, contentType string) (string, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, userID, caption string, file *multipart.FileHeader) (*entity.Post, error)
	GetFeed(callerID string) ([]*entity.FeedPost, error)
	DeletePost(postID, userID string) error
}

type postUseCase struct {
	postRepo persistent.PostRepository
	userRepo persistent.UserRepository
	storage  MediaStorage
	logger   *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
	storage MediaStorage,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

// CreatePost stages the upload to a temp file, pushes it to external
// storage, and only then inserts the post row. A storage failure leaves
// zero rows behind.
func (uc *postUseCase) CreatePost(ctx context.Context, userID, caption string, file *multipart.FileHeader) (*entity.Post, error) {
	contentType := file.Header.Get("Content-Type")
	fileType, ok := entity.FileTypeFromContentType(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", entity.ErrInvalidInput, contentType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable file part", entity.ErrInvalidInput)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	// Storage key is generated here, so two uploads of "cat.jpg" never collide.
	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), filepath.Ext(file.Filename))

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	url, err := uc.storage.UploadFile(uploadCtx, key, tmp, contentType)
	if err != nil {
		uc.logger.Error("Media upload failed for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrExternalService, err)
	}

	post := &entity.Post{
		UserID:   userID,
		Caption:  caption,
		URL:      url,
		FileType: fileType,
		FileName: path.Base(key),
	}

	if err := uc.postRepo.Create(post); err != nil {
		uc.logger.Error("Failed to create post for user %s: %v", userID, err)
		return nil, err
	}

	return post, nil
}

// GetFeed returns every post, newest first, annotated for the caller. A
// post whose owner row is missing is still returned, labeled "Unknown".
func (uc *postUseCase) GetFeed(callerID string) ([]*entity.FeedPost, error) {
	posts, err := uc.postRepo.ListAll()
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.ListAll()
	if err != nil {
		return nil, err
	}

	emailByID := make(map[string]string, len(users))
	for _, u := range users {
		emailByID[u.ID] = u.Email
	}

	feed := make([]*entity.FeedPost, len(posts))
	for i, p := range posts {
		ownerEmail, ok := emailByID[p.UserID]
		if !ok {
			ownerEmail = "Unknown"
		}
		feed[i] = &entity.FeedPost{
			Post:       *p,
			IsOwner:    p.UserID != "" && p.UserID == callerID,
			OwnerEmail: ownerEmail,
		}
	}

	return feed, nil
}

func (uc *postUseCase) DeletePost(postID, userID string) error {
	post, err := uc.postRepo.GetByID(postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own posts", entity.ErrForbidden)
	}

	return uc.postRepo.Delete(postID)
}
