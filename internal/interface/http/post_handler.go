package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/application"
	"github.com/sakilait22310750/skillsync/internal/interface/middleware"
	"github.com/sakilait22310750/skillsync/pkg/response"
	"github.com/sakilait22310750/skillsync/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create accepts multipart form data: a "content" field, up to three
// "images" files or a single "video" file.
func (h *PostHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	content := c.PostForm("content")

	var uploads []application.MediaUpload
	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			_ = f.Close()
		}
	}()

	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "unreadable image upload", nil)
			return
		}
		closers = append(closers, f)
		uploads = append(uploads, application.MediaUpload{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	var video *application.MediaUpload
	if fhs := form.File["video"]; len(fhs) > 0 {
		f, err := fhs[0].Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "unreadable video upload", nil)
			return
		}
		closers = append(closers, f)
		video = &application.MediaUpload{
			Reader:      f,
			Filename:    fhs[0].Filename,
			ContentType: fhs[0].Header.Get("Content-Type"),
		}
	}

	post, err := h.Svc.CreatePost(c.Request.Context(), middleware.Identity(c), content, uploads, video)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, application.ProjectPost(post), "post created", nil)
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPosts(posts), "posts", gin.H{"count": len(posts)})
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.Svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPost(post), "post", nil)
}

func (h *PostHandler) ByUser(c *gin.Context) {
	posts, err := h.Svc.ListByAuthor(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPosts(posts), "posts", gin.H{"count": len(posts)})
}

func (h *PostHandler) Mine(c *gin.Context) {
	posts, err := h.Svc.ListMine(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPosts(posts), "posts", gin.H{"count": len(posts)})
}

func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	post, err := h.Svc.UpdateContent(c.Request.Context(), c.Param("id"), middleware.Identity(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPost(post), "post updated", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeletePost(c.Request.Context(), c.Param("id"), middleware.Identity(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	post, err := h.Svc.Like(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPost(post), "post liked", nil)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	post, err := h.Svc.Unlike(c.Request.Context(), c.Param("id"), middleware.Identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPost(post), "post unliked", nil)
}

func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	post, err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), middleware.Identity(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPost(post), "comment added", nil)
}

// Media streams raw blob bytes with the stored content type, skipping the
// JSON envelope.
func (h *PostHandler) Media(c *gin.Context) {
	blob, err := h.Svc.GetMedia(c.Request.Context(), c.Param("blobId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, blob.ContentType, blob.Data)
}

func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	posts, err := h.Svc.SearchPosts(c.Request.Context(), q, 10)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, application.ProjectPosts(posts), "search results", gin.H{"count": len(posts), "q": q})
}
