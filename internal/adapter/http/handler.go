package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"finpet/internal/app/action"
	"finpet/internal/app/auth"
	"finpet/internal/app/finance"
	"finpet/internal/app/missions"
	"finpet/internal/app/petstate"
	"finpet/internal/app/ports"
	"finpet/internal/app/shop"
	"finpet/internal/domain/pet"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

var ErrMissingToken = errors.New("missing bearer token")

type Handler struct {
	AuthUC     auth.UseCase
	PetStateUC petstate.UseCase
	ActionUC   action.UseCase
	MissionsUC missions.UseCase
	ShopUC     shop.UseCase
	FinanceUC  finance.UseCase
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	authGroup := s.Group("/api/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	petGroup := s.Group("/api/pet")
	petGroup.GET("/state", h.petState)
	petGroup.POST("/action", h.petAction)
	petGroup.POST("/select", h.petSelect)

	missionGroup := s.Group("/api/missions")
	missionGroup.GET("", h.missionList)
	missionGroup.POST("/:id/step", h.missionStep)
	missionGroup.POST("/:id/claim", h.missionClaim)

	shopGroup := s.Group("/api/shop")
	shopGroup.GET("/items", h.shopItems)
	shopGroup.POST("/purchase", h.shopPurchase)

	financeGroup := s.Group("/api/finance")
	financeGroup.POST("/snapshot", h.financeSnapshot)
	financeGroup.GET("/snapshot/latest", h.financeLatest)

	s.GET("/ops/kpi", h.kpi)
}

type credentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body credentialsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AuthUC.Register(c, auth.RegisterRequest{Nickname: body.Nickname, Password: body.Password})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) login(c context.Context, ctx *app.RequestContext) {
	var body credentialsRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AuthUC.Login(c, auth.LoginRequest{Nickname: body.Nickname, Password: body.Password})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) petState(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	view, err := h.PetStateUC.BuildState(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

type petActionRequest struct {
	Name   string `json:"name"`
	ItemID string `json:"item_id"`
}

func (h Handler) petAction(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body petActionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	view, err := h.ActionUC.Execute(c, action.Request{
		UserID: userID,
		Name:   body.Name,
		ItemID: body.ItemID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

type selectPetRequest struct {
	PetID string `json:"pet_id"`
}

func (h Handler) petSelect(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body selectPetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.PetStateUC.SelectPet(c, userID, body.PetID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) missionList(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	entries, err := h.MissionsUC.List(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, entries)
}

func (h Handler) missionStep(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	missionID, err := missionIDParam(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_mission_id", "mission id must be a positive integer")
		return
	}
	resp, err := h.MissionsUC.Step(c, missionID, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) missionClaim(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	missionID, err := missionIDParam(ctx)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_mission_id", "mission id must be a positive integer")
		return
	}
	resp, err := h.MissionsUC.Claim(c, missionID, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type shopItemView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Type        string `json:"type"`
}

func (h Handler) shopItems(c context.Context, ctx *app.RequestContext) {
	if _, err := h.requireUser(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	items, err := h.ShopUC.ListItems(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	views := make([]shopItemView, 0, len(items))
	for _, item := range items {
		views = append(views, shopItemView{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Price:       item.Price,
			Type:        string(item.Type),
		})
	}
	ctx.JSON(consts.StatusOK, views)
}

type purchaseRequest struct {
	ItemID string `json:"item_id"`
}

func (h Handler) shopPurchase(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	view, err := h.ShopUC.Purchase(c, userID, body.ItemID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

type snapshotRequest struct {
	Date        string  `json:"date"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Balance     float64 `json:"balance"`
	SavingsRate float64 `json:"savings_rate"`
}

func (h Handler) financeSnapshot(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body snapshotRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	var date time.Time
	if body.Date != "" {
		date, err = time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_date", "date must be YYYY-MM-DD")
			return
		}
	}
	record, err := h.FinanceUC.RecordSnapshot(c, finance.SnapshotRequest{
		UserID:      userID,
		Date:        date,
		Income:      body.Income,
		Expenses:    body.Expenses,
		Balance:     body.Balance,
		SavingsRate: body.SavingsRate,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, record)
}

func (h Handler) financeLatest(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireUser(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	record, err := h.FinanceUC.Latest(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, record)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) requireUser(ctx *app.RequestContext) (string, error) {
	header := strings.TrimSpace(string(ctx.GetHeader(authorizationHeader)))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}
	return h.AuthUC.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
}

func missionIDParam(ctx *app.RequestContext) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("bad mission id")
	}
	return id, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		writeErrorBody(ctx, consts.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, auth.ErrNicknameTaken):
		writeErrorBody(ctx, consts.StatusConflict, "nickname_taken", err.Error())
	case errors.Is(err, action.ErrInsufficientSatiety):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_satiety", err.Error())
	case errors.Is(err, action.ErrOutOfStock):
		writeErrorBody(ctx, consts.StatusConflict, "out_of_stock", err.Error())
	case errors.Is(err, action.ErrWrongItemType):
		writeErrorBody(ctx, consts.StatusConflict, "wrong_item_type", err.Error())
	case errors.Is(err, action.ErrNoEffect):
		writeErrorBody(ctx, consts.StatusConflict, "no_effect", err.Error())
	case errors.Is(err, action.ErrMissingSelection):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_selection", err.Error())
	case errors.Is(err, action.ErrUnknownAction):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_action", err.Error())
	case errors.Is(err, missions.ErrAlreadyCompleted):
		writeErrorBody(ctx, consts.StatusConflict, "mission_already_completed", err.Error())
	case errors.Is(err, missions.ErrNotCompleted):
		writeErrorBody(ctx, consts.StatusConflict, "mission_not_completed", err.Error())
	case errors.Is(err, missions.ErrAlreadyClaimed):
		writeErrorBody(ctx, consts.StatusConflict, "reward_already_claimed", err.Error())
	case errors.Is(err, shop.ErrNotEnoughCoins):
		writeErrorBody(ctx, consts.StatusConflict, "not_enough_coins", err.Error())
	case errors.Is(err, petstate.ErrPetNotOwned):
		writeErrorBody(ctx, consts.StatusConflict, "pet_not_owned", err.Error())
	case errors.Is(err, pet.ErrMalformedEffect), errors.Is(err, pet.ErrUnknownItemType):
		writeErrorBody(ctx, consts.StatusConflict, "bad_catalog_item", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, finance.ErrInvalidRequest),
		errors.Is(err, missions.ErrInvalidRequest),
		errors.Is(err, petstate.ErrInvalidRequest),
		errors.Is(err, shop.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
