package handlers

import (
	"github.com/gin-gonic/gin"

	"inkwell-cms/helper"
	"inkwell-cms/middleware"
	"inkwell-cms/models"
	"inkwell-cms/services"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: h}
}

// GetComments handles GET /posts/:id/comments?status=
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var params models.CommentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query", err.Error())
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), postID, params)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), postID, req, middleware.UserID(c))
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment submitted for moderation", comment)
}

func (h *CommentHandler) ApproveComment(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.ApproveComment(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment approved", comment)
}

func (h *CommentHandler) RejectComment(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.RejectComment(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment marked as spam", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), id); err != nil {
		h.Helper.SendAppError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted successfully", h.Helper.EmptyJsonMap())
}
