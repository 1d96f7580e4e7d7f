package handlers

import (
	"github.com/gin-gonic/gin"

	"inkwell-cms/helper"
	"inkwell-cms/models"
	"inkwell-cms/services"
)

type AssistHandler struct {
	assistService services.AssistService
	Helper        *helper.HTTPHelper
}

func NewAssistHandler(assistService services.AssistService, h *helper.HTTPHelper) *AssistHandler {
	return &AssistHandler{assistService: assistService, Helper: h}
}

func (h *AssistHandler) SuggestTitles(c *gin.Context) {
	var req models.AssistRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}
	h.Helper.SendSuccess(c, "Success", gin.H{"titles": h.assistService.SuggestTitles(req.Content)})
}

func (h *AssistHandler) SuggestKeywords(c *gin.Context) {
	var req models.AssistRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}
	h.Helper.SendSuccess(c, "Success", gin.H{"keywords": h.assistService.SuggestKeywords(req.Content)})
}

func (h *AssistHandler) SuggestSummaries(c *gin.Context) {
	var req models.AssistRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}
	h.Helper.SendSuccess(c, "Success", gin.H{"summaries": h.assistService.SuggestSummaries(req.Content)})
}
