package handlers

// Banner texts. Failures show the backend's message when it sent one and
// fall back to these otherwise.
const (
	msgError             = "Error"
	msgUserCreated       = "User created!"
	msgUserDeleted       = "User deleted"
	msgBankAdded         = "Bank added!"
	msgBankUpdated       = "Bank updated!"
	msgBankDeleted       = "Bank deleted"
	msgErrorAddingBank   = "Error adding bank"
	msgAccountDeactivate = "Account deactivated"
	msgAccountUpdated    = "Account updated!"
	msgAccountCreatedFmt = "Account created! Account No: %s"
	msgErrorCreatingAcct = "Error creating account"
	msgDepositOK         = "Deposit successful!"
	msgWithdrawalOK      = "Withdrawal successful!"
	msgTransactionFailed = "Transaction failed"
	msgWithdrawalFailed  = "Withdrawal failed"
	msgPinSet            = "PIN set successfully!"
	msgPinFailed         = "Failed to set PIN"
	msgAccountNotFound   = "Account not found"
)
