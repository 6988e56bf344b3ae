package service

import (
	"context"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

// ConnectWallet drives the adapter's connect flow. The session always comes
// back, failed or not; failures live in its Error field.
func ConnectWallet(ctx context.Context, serverCtx *svc.ServerCtx) entity.WalletSession {
	session, _ := serverCtx.Wallet.Connect(ctx)
	return session
}

// DisconnectWallet clears the local session. No provider call is made.
func DisconnectWallet(serverCtx *svc.ServerCtx) entity.WalletSession {
	serverCtx.Wallet.Disconnect()
	return serverCtx.Wallet.Session()
}

func GetWalletSession(serverCtx *svc.ServerCtx) entity.WalletSession {
	return serverCtx.Wallet.Session()
}
