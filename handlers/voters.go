package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/internal/voters"
)

type VoterHandler struct {
	svc *voters.Service
}

func NewVoterHandler(svc *voters.Service) *VoterHandler {
	return &VoterHandler{svc: svc}
}

// Register routes for voter registration and rankings
func (h *VoterHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/polls/:id/voters", h.Create)
	rg.GET("/voters/:id", h.Get)
	rg.PUT("/voters/:id/selections", h.UpdateSelections)
}

// Create registers a voter for the poll in the path and answers 201 with its id.
func (h *VoterHandler) Create(c *gin.Context) {
	id, err := h.svc.Create(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.String(http.StatusCreated, id)
}

func (h *VoterHandler) Get(c *gin.Context) {
	v, err := h.svc.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// UpdateSelections replaces the voter's rankings. Rank problems are returned as text.
func (h *VoterHandler) UpdateSelections(c *gin.Context) {
	var sel []models.VoterSelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		badPayload(c, err)
		return
	}
	id, err := h.svc.UpdateSelections(c.Request.Context(), c.Param("id"), sel)
	if err != nil {
		if apperr.Is(err, apperr.Validation) {
			abortWithMessage(c, err)
			return
		}
		abort(c, err)
		return
	}
	c.String(http.StatusOK, id)
}
