package banking

// Request payloads accepted from the browser and forwarded to the backend.
// Binding tags are checked by gin before any backend call is made.

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber,omitempty" binding:"omitempty,max=20"`
	Role        string `json:"role" binding:"omitempty,role"`
}

type BankRequest struct {
	BankName string `json:"bankName" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Pincode  string `json:"pincode" binding:"omitempty,max=12"`
	IFSCCode string `json:"ifscCode" binding:"omitempty,max=20"`
}

type CreateAccountRequest struct {
	UserID         int64       `json:"userId" binding:"required,min=1"`
	BankID         *int64      `json:"bankId"`
	Name           string      `json:"name" binding:"required"`
	Address        string      `json:"address"`
	PhoneNumber    string      `json:"phoneNumber" binding:"omitempty,max=20"`
	Pin            string      `json:"pin" binding:"omitempty,pin"`
	AccountType    AccountType `json:"accountType" binding:"required,accounttype"`
	InitialDeposit *Money      `json:"initialDeposit" binding:"omitempty,gte=0"`
}

type TransactionRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Amount        Money  `json:"amount" binding:"required,gt=0"`
	Pin           string `json:"pin,omitempty" binding:"omitempty,pin"`
	Description   string `json:"description,omitempty" binding:"max=255"`
}

type SetPinRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	NewPin        string `json:"newPin" binding:"required,pin"`
}
