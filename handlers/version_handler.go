package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/services"
)

type VersionHandler struct {
	versionService services.VersionService
	postService    services.PostService
	Helper         *helper.HTTPHelper
}

func NewVersionHandler(versionService services.VersionService, postService services.PostService, h *helper.HTTPHelper) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		postService:    postService,
		Helper:         h,
	}
}

func (h *VersionHandler) GetVersions(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if !h.requirePost(c, postID) {
		return
	}

	versions, err := h.versionService.ListVersions(c.Request.Context(), postID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", versions)
}

func (h *VersionHandler) GetVersion(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	versionID, ok := h.Helper.ParseID(c, "version_id")
	if !ok {
		return
	}

	if !h.requirePost(c, postID) {
		return
	}

	version, err := h.versionService.GetVersion(c.Request.Context(), postID, versionID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", version)
}

func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	versionID, ok := h.Helper.ParseID(c, "version_id")
	if !ok {
		return
	}

	result, err := h.postService.RestorePost(c.Request.Context(), postID, versionID, middleware.UserID(c))
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Version restored successfully", result)
}

func (h *VersionHandler) DeleteVersion(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	versionID, ok := h.Helper.ParseID(c, "version_id")
	if !ok {
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}
	if post.AuthorID != middleware.UserID(c) && !canManageOthers(c) {
		h.Helper.SendForbiddenError(c, "only the author or an editor may delete versions", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.versionService.DeleteVersion(c.Request.Context(), postID, versionID); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Version deleted successfully", h.Helper.EmptyJsonMap())
}

// CompareVersions handles GET /posts/:id/compare?from=&to=.
func (h *VersionHandler) CompareVersions(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	fromID, errFrom := strconv.ParseUint(c.Query("from"), 10, 32)
	toID, errTo := strconv.ParseUint(c.Query("to"), 10, 32)
	if errFrom != nil || errTo != nil {
		h.Helper.SendBadRequest(c, "from and to must be version ids", h.Helper.EmptyJsonMap())
		return
	}
	if !h.requirePost(c, postID) {
		return
	}

	cmp, err := h.versionService.CompareVersions(c.Request.Context(), postID, uint(fromID), uint(toID))
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", cmp)
}

// requirePost answers 404 for history of a missing or deleted post.
func (h *VersionHandler) requirePost(c *gin.Context, postID uint) bool {
	if _, err := h.postService.GetPost(c.Request.Context(), postID); err != nil {
		h.Helper.SendAppError(c, err)
		return false
	}
	return true
}

func canManageOthers(c *gin.Context) bool {
	actor, ok := services.ActorFromContext(c.Request.Context())
	return ok && actor.Role.CanManageOthers()
}
