package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuNaik19/Blog-Platform/middleware"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

// maxCollectionBytes bounds a collection document accepted over the wire.
const maxCollectionBytes = 8 << 20

// CollectionController exposes raw collection documents over HTTP so another
// instance running in remote storage mode can use this one as its backend.
// The contract mirrors the storage.Adapter: whole documents, last write wins.
type CollectionController struct {
	store storage.Adapter
}

// NewCollectionController creates a CollectionController.
func NewCollectionController(store storage.Adapter) *CollectionController {
	return &CollectionController{store: store}
}

// GetCollection streams the raw document for a collection key. Admin only.
func (c *CollectionController) GetCollection(ctx *gin.Context) {
	if !c.requireAdmin(ctx) {
		return
	}

	data, err := c.store.Read(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "collection not found")
			return
		}
		utils.Sugar.Errorf("collection read failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to read collection")
		return
	}
	ctx.Data(http.StatusOK, "application/json", data)
}

// PutCollection replaces the document for a collection key. Admin only.
func (c *CollectionController) PutCollection(ctx *gin.Context) {
	if !c.requireAdmin(ctx) {
		return
	}

	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxCollectionBytes+1))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "failed to read request body")
		return
	}
	if len(data) > maxCollectionBytes {
		utils.Error(ctx, http.StatusRequestEntityTooLarge, 40041, "collection document too large")
		return
	}

	if err := c.store.Write(ctx.Request.Context(), ctx.Param("key"), data); err != nil {
		utils.Sugar.Errorf("collection write failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to write collection")
		return
	}
	utils.Success(ctx, gin.H{"message": "collection stored"})
}

func (c *CollectionController) requireAdmin(ctx *gin.Context) bool {
	viewer := middleware.CurrentUser(ctx)
	if viewer == nil || viewer.Role != models.RoleAdmin {
		utils.Error(ctx, http.StatusForbidden, 40330, "admin access required")
		ctx.Abort()
		return false
	}
	return true
}
