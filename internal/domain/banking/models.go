package banking

import "github.com/geocoder89/bankportal/internal/domain/session"

type AccountType string

const (
	AccountSavings      AccountType = "SAVINGS"
	AccountCurrent      AccountType = "CURRENT"
	AccountFixedDeposit AccountType = "FIXED_DEPOSIT"
)

func (t AccountType) IsValid() bool {
	switch t {
	case AccountSavings, AccountCurrent, AccountFixedDeposit:
		return true
	default:
		return false
	}
}

type User struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	PhoneNumber string       `json:"phoneNumber,omitempty"`
	Role        session.Role `json:"role"`
}

type Bank struct {
	ID       int64  `json:"id,omitempty"`
	BankName string `json:"bankName"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode,omitempty"`
	IFSCCode string `json:"ifscCode,omitempty"`
}

type Account struct {
	ID            int64       `json:"id"`
	AccountNumber string      `json:"accountNumber"`
	Name          string      `json:"name"`
	Balance       Money       `json:"balance"`
	AccountType   AccountType `json:"accountType"`
	IsActive      bool        `json:"isActive"`
	BankName      string      `json:"bankName,omitempty"`
	UserID        int64       `json:"userId"`
}

type Transaction struct {
	ID              int64  `json:"id"`
	TransactionType string `json:"transactionType"`
	Amount          Money  `json:"amount"`
	BalanceAfter    Money  `json:"balanceAfter"`
	Description     string `json:"description,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
	AccountNumber   string `json:"accountNumber"`
}

type Balance struct {
	AccountNumber string `json:"accountNumber"`
	Balance       Money  `json:"balance"`
	Name          string `json:"name"`
}

type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalAccounts     int64 `json:"totalAccounts"`
	TotalTransactions int64 `json:"totalTransactions"`
	TotalBalance      Money `json:"totalBalance"`
}

// LoginResult is what the backend issues on /auth/login.
type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

// ClientUsers keeps only users holding the CLIENT role, in order.
func ClientUsers(users []User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == session.RoleClient {
			out = append(out, u)
		}
	}
	return out
}

// ActiveAccounts keeps only accounts that can still be withdrawn from.
func ActiveAccounts(accounts []Account) []Account {
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}
