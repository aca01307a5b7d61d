package handlers

import (
	"context"

	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	ClientTabAccounts     = "accounts"
	ClientTabTransactions = "transactions"
	ClientTabWithdraw     = "withdraw"
	ClientTabPin          = "pin"
)

type ClientAPI interface {
	MyAccounts(ctx context.Context) ([]banking.Account, error)
	Balance(ctx context.Context, accountNumber string) (banking.Balance, error)
	Transactions(ctx context.Context, accountNumber string) ([]banking.Transaction, error)
	SetPin(ctx context.Context, req banking.SetPinRequest) error
	Withdraw(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error)
}

type ClientHandler struct {
	api     ClientAPI
	flashes *flash.Store
}

func NewClientHandler(api ClientAPI, flashes *flash.Store) *ClientHandler {
	return &ClientHandler{api: api, flashes: flashes}
}

func (h *ClientHandler) Show(ctx *gin.Context) {
	tab := ctx.Param("tab")
	if tab == "" {
		tab = ClientTabAccounts
	}

	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}

	renderView(ctx, h.flashes, "client", tab, data)
}

func (h *ClientHandler) load(ctx *gin.Context, tab string) (gin.H, bool) {
	switch tab {
	case ClientTabAccounts, ClientTabPin:
		accounts, ok := h.accounts(ctx)
		return gin.H{"accounts": accounts}, ok
	case ClientTabWithdraw:
		accounts, ok := h.accounts(ctx)
		return gin.H{"accounts": banking.ActiveAccounts(accounts)}, ok
	case ClientTabTransactions:
		return h.detail(ctx)
	default:
		RespondNotFound(ctx, "Unknown tab")
		return nil, false
	}
}

func (h *ClientHandler) accounts(ctx *gin.Context) ([]banking.Account, bool) {
	accounts, err := h.api.MyAccounts(ctx.Request.Context())
	if err != nil {
		accounts = []banking.Account{}
	}
	return accounts, soft(ctx, err)
}

// detail shows one account's history and balance. Without ?account= the
// first account is selected.
func (h *ClientHandler) detail(ctx *gin.Context) (gin.H, bool) {
	accounts, ok := h.accounts(ctx)
	if !ok {
		return nil, false
	}

	selected := ctx.Query("account")
	if selected == "" && len(accounts) > 0 {
		selected = accounts[0].AccountNumber
	}

	data := gin.H{
		"accounts":     accounts,
		"selected":     selected,
		"transactions": []banking.Transaction{},
		"balance":      nil,
	}
	if selected == "" {
		return data, true
	}

	reqCtx := ctx.Request.Context()

	var (
		txns           []banking.Transaction
		bal            banking.Balance
		txnErr, balErr error
		g              errgroup.Group
	)

	g.Go(func() error {
		txns, txnErr = h.api.Transactions(reqCtx, selected)
		return txnErr
	})
	g.Go(func() error {
		bal, balErr = h.api.Balance(reqCtx, selected)
		return balErr
	})

	// each read degrades on its own
	if g.Wait() != nil {
		if !soft(ctx, txnErr) || !soft(ctx, balErr) {
			return nil, false
		}
	}
	if txnErr == nil {
		data["transactions"] = txns
	}
	if balErr == nil {
		data["balance"] = bal
	}

	return data, true
}

func (h *ClientHandler) refresh(ctx *gin.Context, tab string) {
	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}
	renderMutation(ctx, h.flashes, "client", tab, data)
}

func (h *ClientHandler) Withdraw(ctx *gin.Context) {
	var req banking.TransactionRequest
	if !BindJSON(ctx, &req) {
		return
	}

	_, err := h.api.Withdraw(ctx.Request.Context(), req)
	if !notify(ctx, h.flashes, err, msgWithdrawalOK, msgWithdrawalFailed) {
		return
	}

	h.refresh(ctx, ClientTabWithdraw)
}

func (h *ClientHandler) SetPin(ctx *gin.Context) {
	var req banking.SetPinRequest
	if !BindJSON(ctx, &req) {
		return
	}

	err := h.api.SetPin(ctx.Request.Context(), req)
	if !notifyFixed(ctx, h.flashes, err, msgPinSet, msgPinFailed) {
		return
	}

	h.refresh(ctx, ClientTabPin)
}
