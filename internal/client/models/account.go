package models

// Account is a managed cloud account registered on the platform. The
// numeric ID is the platform's internal identifier referenced by
// User.AccountIDs; AccountID is the provider-side account number.
type Account struct {
	ID          int64  `json:"id"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	IsRoot      bool   `json:"is_root"`
	Region      string `json:"region"`
	IsActive    bool   `json:"is_active"`
}
