package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuNaik19/Blog-Platform/middleware"
	"github.com/HimanshuNaik19/Blog-Platform/repository"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

// CommentController manages reading and appending comments for a post.
type CommentController struct {
	comments repository.CommentRepository
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments repository.CommentRepository) *CommentController {
	return &CommentController{comments: comments}
}

// ListComments returns a post's comments in insertion order, replies nested.
func (c *CommentController) ListComments(ctx *gin.Context) {
	comments, err := c.comments.ListByPost(ctx.Request.Context(), ctx.Param("postId"))
	if err != nil {
		utils.Sugar.Errorf("list comments failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to list comments")
		return
	}
	utils.Success(ctx, gin.H{"comments": comments})
}

// AddComment appends a comment, or a reply when parentId is supplied.
// The comment author is the authenticated user's username, a plain string
// snapshot rather than a user reference.
func (c *CommentController) AddComment(ctx *gin.Context) {
	var req struct {
		Text     string `json:"text" binding:"required"`
		ParentID string `json:"parentId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "comment text cannot be empty")
		return
	}

	viewer := middleware.CurrentUser(ctx)
	if viewer == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	postID := ctx.Param("postId")
	if parentID := strings.TrimSpace(req.ParentID); parentID != "" {
		reply, err := c.comments.AddReply(ctx.Request.Context(), postID, parentID, viewer.Username, text)
		if err != nil {
			utils.Sugar.Errorf("add reply failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to add reply")
			return
		}
		if reply == nil {
			utils.Error(ctx, http.StatusNotFound, 40420, "parent comment not found")
			return
		}
		utils.Success(ctx, gin.H{"comment": reply})
		return
	}

	comment, err := c.comments.Add(ctx.Request.Context(), postID, viewer.Username, text)
	if err != nil {
		utils.Sugar.Errorf("add comment failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to add comment")
		return
	}

	utils.Success(ctx, gin.H{"comment": comment})
}
