package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/middleware"
	"github.com/HimanshuNaik19/Blog-Platform/repository"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts repository.PostRepository
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repository.PostRepository) *PostController {
	return &PostController{posts: posts}
}

// ListPosts returns the full post collection, newest first. No pagination.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.posts.ListAll(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, err := p.posts.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		utils.Sugar.Errorf("get post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load post")
		return
	}
	if post == nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost allows admins and authors to publish a new post.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string   `json:"title" binding:"required,min=1"`
		Content string   `json:"content" binding:"required"`
		Excerpt string   `json:"excerpt"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	title := strings.TrimSpace(utils.Sanitize(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}

	viewer := middleware.CurrentUser(ctx)
	if !auth.CanMutate(viewer, nil, auth.ActionCreate) {
		utils.Error(ctx, http.StatusForbidden, 40310, "only authors and admins can create posts")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), viewer, repository.PostInput{
		Title:   title,
		Content: utils.Sanitize(strings.TrimSpace(req.Content)),
		Excerpt: strings.TrimSpace(utils.Sanitize(req.Excerpt)),
		Tags:    req.Tags,
	})
	if err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			utils.Error(ctx, http.StatusForbidden, 40310, "only authors and admins can create posts")
			return
		}
		utils.Sugar.Errorf("create post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost merges the supplied fields over the stored post. Only the owner
// or an admin may update; the repository re-checks that.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title   *string  `json:"title"`
		Content *string  `json:"content"`
		Excerpt *string  `json:"excerpt"`
		Tags    []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	changes := repository.PostChanges{Tags: req.Tags}
	if req.Excerpt != nil {
		excerpt := strings.TrimSpace(utils.Sanitize(*req.Excerpt))
		changes.Excerpt = &excerpt
	}
	if req.Title != nil {
		title := strings.TrimSpace(utils.Sanitize(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusBadRequest, 40023, "title cannot be empty")
			return
		}
		changes.Title = &title
	}
	if req.Content != nil {
		content := utils.Sanitize(strings.TrimSpace(*req.Content))
		changes.Content = &content
	}

	viewer := middleware.CurrentUser(ctx)
	post, err := p.posts.Update(ctx.Request.Context(), viewer, ctx.Param("id"), changes)
	if err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			utils.Error(ctx, http.StatusForbidden, 40311, "you can only update your own posts")
			return
		}
		utils.Sugar.Errorf("update post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to update post")
		return
	}
	if post == nil {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post. Comments under it are left dangling by design.
func (p *PostController) DeletePost(ctx *gin.Context) {
	viewer := middleware.CurrentUser(ctx)
	removed, err := p.posts.Delete(ctx.Request.Context(), viewer, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrForbidden) {
			utils.Error(ctx, http.StatusForbidden, 40312, "you can only delete your own posts")
			return
		}
		utils.Sugar.Errorf("delete post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to delete post")
		return
	}
	if !removed {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}

	utils.Success(ctx, gin.H{"message": "post deleted"})
}
