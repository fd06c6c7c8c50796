// Package httpapi exposes the battle orchestrator over a small JSON HTTP
// surface. Handlers translate between wire DTOs and orchestrator
// inputs/outputs; every domain error maps to a status through its code.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skirmishlabs/combat-api/internal/combat"
	"github.com/skirmishlabs/combat-api/internal/errors"
	battleorch "github.com/skirmishlabs/combat-api/internal/orchestrators/battle"
)

// Config holds the dependencies for the HTTP handler
type Config struct {
	BattleService battleorch.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}

	return vb.Build()
}

// Handler serves the battle API
type Handler struct {
	service battleorch.Service
}

// NewHandler creates a new HTTP handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{service: cfg.BattleService}, nil
}

// RegisterRoutes attaches the API routes to a gin engine
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	battles := v1.Group("/battles")
	battles.POST("", h.createBattle)
	battles.GET("/:id", h.getBattle)
	battles.POST("/:id/actions", h.submitAction)
	battles.GET("/:id/events", h.listEvents)
	battles.POST("/:id/forfeit", h.forfeitBattle)
}

type characterSpecRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ClassID      string   `json:"class_id" binding:"required"`
	Level        int      `json:"level"`
	EquipmentIDs []string `json:"equipment_ids"`
	SkillIDs     []string `json:"skill_ids"`
}

type createBattleRequest struct {
	StageID string                 `json:"stage_id" binding:"required"`
	Squad   []characterSpecRequest `json:"squad" binding:"required"`
	Items   map[string]int         `json:"items"`
	Seed    *int64                 `json:"seed"`
}

type actionRequest struct {
	ActorID   string           `json:"actor_id" binding:"required"`
	Kind      string           `json:"kind" binding:"required"`
	To        *combat.Position `json:"to"`
	TargetID  string           `json:"target_id"`
	TargetPos *combat.Position `json:"target_pos"`
	SkillID   string           `json:"skill_id"`
	ItemID    string           `json:"item_id"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createBattle(c *gin.Context) {
	var req createBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	squad := make([]battleorch.CharacterSpec, 0, len(req.Squad))
	for _, s := range req.Squad {
		squad = append(squad, battleorch.CharacterSpec{
			ID:           s.ID,
			Name:         s.Name,
			ClassID:      s.ClassID,
			Level:        s.Level,
			EquipmentIDs: s.EquipmentIDs,
			SkillIDs:     s.SkillIDs,
		})
	}

	out, err := h.service.CreateBattle(c.Request.Context(), &battleorch.CreateBattleInput{
		StageID: req.StageID,
		Squad:   squad,
		Items:   req.Items,
		Seed:    req.Seed,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"battle":  out.State,
		"intents": out.Intents,
	})
}

func (h *Handler) getBattle(c *gin.Context) {
	out, err := h.service.GetBattle(c.Request.Context(), &battleorch.GetBattleInput{
		BattleID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battle": out.State})
}

func (h *Handler) submitAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid request body: %v", err))
		return
	}

	out, err := h.service.SubmitAction(c.Request.Context(), &battleorch.SubmitActionInput{
		BattleID: c.Param("id"),
		Action: combat.Action{
			Kind:      combat.ActionKind(req.Kind),
			ActorID:   req.ActorID,
			To:        req.To,
			TargetID:  req.TargetID,
			TargetPos: req.TargetPos,
			SkillID:   req.SkillID,
			ItemID:    req.ItemID,
		},
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"battle":  out.State,
		"intents": out.Intents,
	})
}

func (h *Handler) listEvents(c *gin.Context) {
	var query struct {
		Since int `form:"since"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		writeError(c, errors.InvalidArgumentf("invalid query: %v", err))
		return
	}

	out, err := h.service.ListEvents(c.Request.Context(), &battleorch.ListEventsInput{
		BattleID: c.Param("id"),
		SinceSeq: query.Since,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"intents":  out.Intents,
		"next_seq": out.NextSeq,
	})
}

func (h *Handler) forfeitBattle(c *gin.Context) {
	out, err := h.service.ForfeitBattle(c.Request.Context(), &battleorch.ForfeitBattleInput{
		BattleID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"battle": out.State})
}

// writeError maps a domain error onto the wire: the code picks the HTTP
// status, the message stays user-facing.
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "code", code.String(), "error", err)
	}
	c.JSON(status, gin.H{
		"code":    code.String(),
		"message": errors.GetMessage(err),
	})
}
