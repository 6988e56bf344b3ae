package entity

// WalletSession is the single-address wallet state surfaced to clients.
// Error carries a human-readable failure; no error is ever thrown past the
// wallet boundary.
type WalletSession struct {
	Address      string `json:"address"`
	IsConnecting bool   `json:"is_connecting"`
	Error        string `json:"error,omitempty"`
}

type WalletSessionResp struct {
	Result WalletSession `json:"result"`
}
