package model

type Wallet struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Chain     string `json:"chain"`
	Address   string `json:"address"`
	IsPrimary bool   `json:"isPrimary"`
	CreatedAt string `json:"createdAt"`
}

func (w *Wallet) DocID() string           { return w.ID }
func (w *Wallet) DocPartitionKey() string { return w.UserID }

type AddWalletRequest struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

type WalletList struct {
	Wallets []Wallet `json:"wallets"`
}
