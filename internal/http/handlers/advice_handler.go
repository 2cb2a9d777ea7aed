// README: Item safety advice handler.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sharestuff/internal/ai"
)

type AdviceHandler struct {
	advisor ai.Advisor
}

func NewAdviceHandler(advisor ai.Advisor) *AdviceHandler {
	if advisor == nil {
		advisor = ai.FallbackAdvisor{}
	}
	return &AdviceHandler{advisor: advisor}
}

type itemSafetyReq struct {
	ItemDescription string `json:"itemDescription" binding:"required"`
}

// ItemSafety handles POST /api/advice/item-safety.
func (h *AdviceHandler) ItemSafety(c *gin.Context) {
	var req itemSafetyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	desc := strings.TrimSpace(req.ItemDescription)
	if desc == "" || len(desc) > 500 {
		writeError(c, http.StatusBadRequest, "item description must be 1-500 characters")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"advice": h.advisor.ItemSafetyAdvice(c.Request.Context(), desc)})
}
