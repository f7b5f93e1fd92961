package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
	"github.com/forkful/forkful-backend/internal/types"
)

// LLMHandler handles recipe generation requests. Generated candidates are
// staged in the batch store until the client confirms a selection over the
// WebSocket channel.
type LLMHandler struct {
	llm     *service.LLMService
	batches service.BatchStore
}

// NewLLMHandler creates a new LLMHandler instance.
func NewLLMHandler(llm *service.LLMService, batches service.BatchStore) *LLMHandler {
	return &LLMHandler{llm: llm, batches: batches}
}

// Generate handles POST /llm/generate: runs the LLM, stages the candidates,
// and returns the batch id alongside the recipes for review.
func (h *LLMHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, err := h.llm.GenerateRecipes(c.Request.Context(), req.Query, req.NumberOfRecipes)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate recipes: " + err.Error()})
		return
	}

	batchID, err := h.batches.StoreBatch(c.Request.Context(), recipes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batchId": batchID,
		"recipes": recipes,
	})
}
