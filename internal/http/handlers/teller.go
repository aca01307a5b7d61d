package handlers

import (
	"context"
	"fmt"

	"github.com/geocoder89/bankportal/internal/domain/banking"
	"github.com/geocoder89/bankportal/internal/flash"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	TellerTabCreate      = "create"
	TellerTabTransaction = "transaction"
	TellerTabAccounts    = "accounts"
	TellerTabSearch      = "search"
)

type TellerAPI interface {
	// Directory reads are admin endpoints. A teller without admin rights
	// gets a 403 and the create form simply offers no choices.
	Banks(ctx context.Context) ([]banking.Bank, error)
	Users(ctx context.Context) ([]banking.User, error)

	CreateAccount(ctx context.Context, req banking.CreateAccountRequest) (banking.Account, error)
	TellerAccounts(ctx context.Context) ([]banking.Account, error)
	Deposit(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error)
	TellerWithdraw(ctx context.Context, req banking.TransactionRequest) (banking.Transaction, error)
	TellerTransactions(ctx context.Context, accountNumber string) ([]banking.Transaction, error)
	TellerBalance(ctx context.Context, accountNumber string) (banking.Balance, error)
}

type TellerHandler struct {
	api     TellerAPI
	flashes *flash.Store
}

func NewTellerHandler(api TellerAPI, flashes *flash.Store) *TellerHandler {
	return &TellerHandler{api: api, flashes: flashes}
}

func (h *TellerHandler) Show(ctx *gin.Context) {
	tab := ctx.Param("tab")
	if tab == "" {
		tab = TellerTabCreate
	}

	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}

	renderView(ctx, h.flashes, "teller", tab, data)
}

func (h *TellerHandler) load(ctx *gin.Context, tab string) (gin.H, bool) {
	switch tab {
	case TellerTabCreate:
		return h.directory(ctx)
	case TellerTabTransaction:
		return gin.H{}, true
	case TellerTabAccounts:
		accounts, ok := h.accounts(ctx)
		return gin.H{"accounts": accounts}, ok
	case TellerTabSearch:
		return h.search(ctx, ctx.Query("account"))
	default:
		RespondNotFound(ctx, "Unknown tab")
		return nil, false
	}
}

// directory loads the pick lists of the create form in parallel. Only
// client users can own an account.
func (h *TellerHandler) directory(ctx *gin.Context) (gin.H, bool) {
	reqCtx := ctx.Request.Context()

	var (
		banks            []banking.Bank
		users            []banking.User
		bankErr, userErr error
		g                errgroup.Group
	)

	g.Go(func() error {
		banks, bankErr = h.api.Banks(reqCtx)
		return bankErr
	})
	g.Go(func() error {
		users, userErr = h.api.Users(reqCtx)
		return userErr
	})

	if g.Wait() != nil {
		if !soft(ctx, bankErr) || !soft(ctx, userErr) {
			return nil, false
		}
		if bankErr != nil {
			banks = []banking.Bank{}
		}
		if userErr != nil {
			users = []banking.User{}
		}
	}

	return gin.H{"banks": banks, "users": banking.ClientUsers(users)}, true
}

func (h *TellerHandler) accounts(ctx *gin.Context) ([]banking.Account, bool) {
	accounts, err := h.api.TellerAccounts(ctx.Request.Context())
	if err != nil {
		accounts = []banking.Account{}
	}
	return accounts, soft(ctx, err)
}

// search looks an account up by number. Both reads must succeed; any other
// outcome is reported as an unknown account. Neither read cancels the other,
// so a 401 from either one always reaches HandleErrors.
func (h *TellerHandler) search(ctx *gin.Context, accountNumber string) (gin.H, bool) {
	data := gin.H{"account": accountNumber, "transactions": []banking.Transaction{}, "balance": nil}
	if accountNumber == "" {
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
		txns, txnErr = h.api.TellerTransactions(reqCtx, accountNumber)
		return txnErr
	})
	g.Go(func() error {
		bal, balErr = h.api.TellerBalance(reqCtx, accountNumber)
		return balErr
	})

	if g.Wait() != nil {
		if unauthorized(ctx, txnErr) || unauthorized(ctx, balErr) {
			return nil, false
		}
		h.flashes.Set(scopeOf(ctx).Handle(), flash.Failure(msgAccountNotFound))
		return data, true
	}

	data["transactions"] = txns
	data["balance"] = bal
	return data, true
}

// refresh answers a mutation with the form's tab plus the refetched account
// list.
func (h *TellerHandler) refresh(ctx *gin.Context, tab string) {
	data, ok := h.load(ctx, tab)
	if !ok {
		return
	}

	accounts, ok := h.accounts(ctx)
	if !ok {
		return
	}
	data["accounts"] = accounts

	renderMutation(ctx, h.flashes, "teller", tab, data)
}

func (h *TellerHandler) CreateAccount(ctx *gin.Context) {
	var req banking.CreateAccountRequest
	if !BindJSON(ctx, &req) {
		return
	}

	acct, err := h.api.CreateAccount(ctx.Request.Context(), req)
	if !notify(ctx, h.flashes, err, fmt.Sprintf(msgAccountCreatedFmt, acct.AccountNumber), msgErrorCreatingAcct) {
		return
	}

	h.refresh(ctx, TellerTabCreate)
}

func (h *TellerHandler) Deposit(ctx *gin.Context) {
	h.transact(ctx, h.api.Deposit, msgDepositOK)
}

func (h *TellerHandler) Withdraw(ctx *gin.Context) {
	h.transact(ctx, h.api.TellerWithdraw, msgWithdrawalOK)
}

func (h *TellerHandler) transact(ctx *gin.Context, post func(context.Context, banking.TransactionRequest) (banking.Transaction, error), success string) {
	var req banking.TransactionRequest
	if !BindJSON(ctx, &req) {
		return
	}

	_, err := post(ctx.Request.Context(), req)
	if !notify(ctx, h.flashes, err, success, msgTransactionFailed) {
		return
	}

	h.refresh(ctx, TellerTabTransaction)
}
