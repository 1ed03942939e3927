package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/internship-faqbot/internal/domain/dialogue"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

// Responder produces chat replies with greeting, farewell and fallback handling.
type Responder interface {
	Respond(ctx context.Context, input string) dialogue.Reply
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	faqSvc    faq.Service
	responder Responder
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, responder Responder, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc:    faqSvc,
		responder: responder,
		logger:    logger.With("component", "http.handler"),
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Ask answers a single FAQ question with match metadata.
func (h *Handler) Ask(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, faqError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Chat runs one dialogue turn; unmatched questions get the fallback reply.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}
	c.JSON(http.StatusOK, h.responder.Respond(c.Request.Context(), req.Message))
}

// Entries lists the loaded corpus in order.
func (h *Handler) Entries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.faqSvc.Entries()})
}

// Trending returns the most frequently matched questions.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, faqError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Health reports liveness along with the corpus size.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": len(h.faqSvc.Entries())})
}
