package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

const secondsPerDay = 24 * 60 * 60

// GetTodayCanvas describes the canvas currently open for minting. Day 1
// starts at the collection genesis timestamp; each canvas closes when the
// next day opens.
func GetTodayCanvas(serverCtx *svc.ServerCtx, now time.Time) entity.TodayCanvas {
	genesis := serverCtx.C.Collection.GenesisTime
	day := (now.Unix()-genesis)/secondsPerDay + 1
	if day < 1 {
		day = 1
	}
	price, _ := decimal.NewFromString(serverCtx.C.Mint.PriceEth)
	return entity.TodayCanvas{
		Day:       day,
		PriceEth:  price,
		OpenUntil: genesis + day*secondsPerDay,
	}
}

// GetTodayCanvasWithFloor additionally attaches the cached collection floor
// when a kv store is wired.
func GetTodayCanvasWithFloor(serverCtx *svc.ServerCtx, now time.Time) entity.TodayCanvas {
	today := GetTodayCanvas(serverCtx, now)
	if serverCtx.Cached != nil {
		if floor, err := serverCtx.Cached.GetFloorPrice(); err == nil && floor != "" {
			today.FloorPriceEth = floor
		}
	}
	return today
}

// MintToday runs the mint flow for the current day's canvas. Chain
// submission is simulated; the returned hash is a deterministic pseudo
// transaction id, not an on-chain receipt.
func MintToday(ctx context.Context, serverCtx *svc.ServerCtx, p entity.MintParams) (*entity.MintResult, error) {
	address := serverCtx.Wallet.Address()
	if address == "" {
		return nil, errcode.ErrWalletNotConnected
	}
	if p.Quantity <= 0 || p.Quantity > serverCtx.C.Mint.MaxQuantity {
		return nil, errcode.ErrInvalidParams
	}

	today := GetTodayCanvas(serverCtx, time.Now())
	total := today.PriceEth.Mul(decimal.New(p.Quantity, 0))
	valueWeiHex := opensea.EthToWeiHex(total)
	txHash := crypto.Keccak256Hash([]byte(fmt.Sprintf("mint:%s:%d:%d:%s:%d",
		address, today.Day, p.Quantity, valueWeiHex, time.Now().UnixNano()))).Hex()

	xzap.WithContext(ctx).Info("mint simulated",
		zap.String("address", address),
		zap.Int64("day", today.Day),
		zap.Int64("quantity", p.Quantity),
		zap.String("value", valueWeiHex),
		zap.String("tx_hash", txHash))

	return &entity.MintResult{
		Day:         today.Day,
		Quantity:    p.Quantity,
		TotalPrice:  total,
		ValueWeiHex: valueWeiHex,
		TxHash:      txHash,
	}, nil
}
