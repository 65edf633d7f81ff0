package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/internal/polls"
	"github.com/rankchoice/vote/internal/storage"
)

// ArchiveLinker hands out temporary download links for archived objects.
type ArchiveLinker interface {
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type PollHandler struct {
	svc     *polls.Service
	archive ArchiveLinker
	linkTTL time.Duration
}

func NewPollHandler(svc *polls.Service) *PollHandler {
	return &PollHandler{svc: svc}
}

// WithArchive enables GET /polls/:id/archive, answered with a redirect to a
// link that expires after ttl.
func (h *PollHandler) WithArchive(l ArchiveLinker, ttl time.Duration) *PollHandler {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	h.archive, h.linkTTL = l, ttl
	return h
}

// Register routes under /polls
func (h *PollHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/polls/:id", h.Get)
	rg.HEAD("/polls/:id", h.Head)
	rg.POST("/polls", h.Create)
	rg.PUT("/polls/:id", h.Update)
	rg.GET("/polls/:id/archive", h.Archive)
}

// Get returns the stored poll as JSON.
func (h *PollHandler) Get(c *gin.Context) {
	p, err := h.svc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Head answers 200 when the poll exists and 404 otherwise.
func (h *PollHandler) Head(c *gin.Context) {
	ok, err := h.svc.Exists(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// Create stores a new poll and answers 201 with its id.
func (h *PollHandler) Create(c *gin.Context) {
	var req models.PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	id, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		abort(c, err)
		return
	}
	c.String(http.StatusCreated, id)
}

// Update edits a Scheduled poll. A refused edit carries the reason in the body.
func (h *PollHandler) Update(c *gin.Context) {
	var req models.PollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	id, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if apperr.Is(err, apperr.Forbidden) {
			abortWithMessage(c, err)
			return
		}
		abort(c, err)
		return
	}
	c.String(http.StatusOK, id)
}

// Archive redirects to the archived snapshot of a closed poll. Polls that are
// not closed, or a server without archive storage, answer 404.
func (h *PollHandler) Archive(c *gin.Context) {
	if h.archive == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	p, err := h.svc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	if p.Status != models.PollStatusClosed {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	link, err := h.archive.PresignedURL(c.Request.Context(), storage.ArchiveKey(p.ID), h.linkTTL)
	if err != nil {
		abort(c, apperr.NewInternal("presign archive", err))
		return
	}
	c.Redirect(http.StatusFound, link)
}
