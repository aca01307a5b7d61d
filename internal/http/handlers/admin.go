package handlers

import (
	"context"

	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/gin-gonic/gin"
)

const (
	AdminTabDashboard    = "dashboard"
	AdminTabUsers        = "users"
	AdminTabBanks        = "banks"
	AdminTabAccounts     = "accounts"
	AdminTabTransactions = "transactions"
)

type AdminAPI interface {
	AdminDashboard(ctx context.Context) (banking.DashboardStats, error)
	Users(ctx context.Context) ([]banking.User, error)
	CreateUser(ctx context.Context, req banking.RegisterRequest) error
	DeleteUser(ctx context.Context, id int64) error
	Banks(ctx context.Context) ([]banking.Bank, error)
	AddBank(ctx context.Context, req banking.BankRequest) (banking.Bank, error)
	UpdateBank(ctx context.Context, id int64, req banking.BankRequest) (banking.Bank, error)
	DeleteBank(ctx context.Context, id int64) error
	AllAccounts(ctx context.Context) ([]banking.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	UpdateAccount(ctx context.Context, id int64, req banking.CreateAccountRequest) (banking.Account, error)
	AllTransactions(ctx context.Context) ([]banking.Transaction, error)
}

type AdminHandler struct {
	api     AdminAPI
	flashes *flash.Store
}

func NewAdminHandler(api AdminAPI, flashes *flash.Store) *AdminHandler {
	return &AdminHandler{api: api, flashes: flashes}
}

func (h *AdminHandler) Show(ctx *gin.Context) {
	tab := ctx.Param("tab")
	if tab == "" {
		tab = AdminTabDashboard
	}

	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}

	renderView(ctx, h.flashes, "admin", tab, data)
}

// load fetches what tab displays. Failed reads render as empty.
func (h *AdminHandler) load(ctx *gin.Context, tab string) (any, bool) {
	reqCtx := ctx.Request.Context()

	switch tab {
	case AdminTabDashboard:
		stats, err := h.api.AdminDashboard(reqCtx)
		return gin.H{"stats": stats}, soft(ctx, err)
	case AdminTabUsers:
		users, err := h.api.Users(reqCtx)
		if err != nil {
			users = []banking.User{}
		}
		return gin.H{"users": users}, soft(ctx, err)
	case AdminTabBanks:
		banks, err := h.api.Banks(reqCtx)
		if err != nil {
			banks = []banking.Bank{}
		}
		return gin.H{"banks": banks}, soft(ctx, err)
	case AdminTabAccounts:
		accounts, err := h.api.AllAccounts(reqCtx)
		if err != nil {
			accounts = []banking.Account{}
		}
		return gin.H{"accounts": accounts}, soft(ctx, err)
	case AdminTabTransactions:
		txns, err := h.api.AllTransactions(reqCtx)
		if err != nil {
			txns = []banking.Transaction{}
		}
		return gin.H{"transactions": txns}, soft(ctx, err)
	default:
		RespondNotFound(ctx, "Unknown tab")
		return nil, false
	}
}

// refresh answers a mutation with the refetched tab.
func (h *AdminHandler) refresh(ctx *gin.Context, tab string) {
	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}
	renderMutation(ctx, h.flashes, "admin", tab, data)
}

func (h *AdminHandler) CreateUser(ctx *gin.Context) {
	var req banking.RegisterRequest
	if !BindJSON(ctx, &req) {
		return
	}
	if req.Role == "" {
		req.Role = "CLIENT"
	}

	err := h.api.CreateUser(ctx.Request.Context(), req)
	if !notify(ctx, h.flashes, err, msgUserCreated, msgError) {
		return
	}

	h.refresh(ctx, AdminTabUsers)
}

func (h *AdminHandler) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	err := h.api.DeleteUser(ctx.Request.Context(), id)
	if !notify(ctx, h.flashes, err, msgUserDeleted, msgError) {
		return
	}

	h.refresh(ctx, AdminTabUsers)
}

func (h *AdminHandler) AddBank(ctx *gin.Context) {
	var req banking.BankRequest
	if !BindJSON(ctx, &req) {
		return
	}

	_, err := h.api.AddBank(ctx.Request.Context(), req)
	if !notifyFixed(ctx, h.flashes, err, msgBankAdded, msgErrorAddingBank) {
		return
	}

	h.refresh(ctx, AdminTabBanks)
}

func (h *AdminHandler) UpdateBank(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req banking.BankRequest
	if !BindJSON(ctx, &req) {
		return
	}

	_, err := h.api.UpdateBank(ctx.Request.Context(), id, req)
	if !notify(ctx, h.flashes, err, msgBankUpdated, msgError) {
		return
	}

	h.refresh(ctx, AdminTabBanks)
}

func (h *AdminHandler) DeleteBank(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	err := h.api.DeleteBank(ctx.Request.Context(), id)
	if !notify(ctx, h.flashes, err, msgBankDeleted, msgError) {
		return
	}

	h.refresh(ctx, AdminTabBanks)
}

// DeactivateAccount is the backend's DELETE: the account stays listed as
// inactive.
func (h *AdminHandler) DeactivateAccount(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	err := h.api.DeleteAccount(ctx.Request.Context(), id)
	if !notify(ctx, h.flashes, err, msgAccountDeactivate, msgError) {
		return
	}

	h.refresh(ctx, AdminTabAccounts)
}

func (h *AdminHandler) UpdateAccount(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req banking.CreateAccountRequest
	if !BindJSON(ctx, &req) {
		return
	}

	_, err := h.api.UpdateAccount(ctx.Request.Context(), id, req)
	if !notify(ctx, h.flashes, err, msgAccountUpdated, msgError) {
		return
	}

	h.refresh(ctx, AdminTabAccounts)
}
