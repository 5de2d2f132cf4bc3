package http

import (
	"net/http"

	"simple-social/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
}

func NewPostHandler(postUseCase usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

// Upload godoc
// @Summary      Upload a media post
// @Description  Upload one image or video with an optional caption
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Media file"
// @Param        caption formData string false "Caption"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /upload [post]
func (h *PostHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file part is required"})
		return
	}
	caption := c.PostForm("caption")

	post, err := h.postUseCase.CreatePost(c.Request.Context(), c.GetString("user_id"), caption, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Feed godoc
// @Summary      Global feed
// @Description  Every post in the system, newest first, annotated with ownership and owner email
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]entity.FeedPost
// @Failure      401  {object}  map[string]string
// @Router       /feed [get]
func (h *PostHandler) Feed(c *gin.Context) {
	feed, err := h.postUseCase.GetFeed(c.GetString("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": feed})
}

// Delete godoc
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID := c.Param("post_id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postUseCase.DeletePost(postID, c.GetString("user_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
