package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DepositEvent is emitted once per completed deposit.
type DepositEvent struct {
	Holder       common.Address
	AmountA      *big.Int
	AmountB      *big.Int
	SharesMinted *big.Int
}

// WithdrawEvent is emitted once per completed withdrawal.
type WithdrawEvent struct {
	Holder       common.Address
	AmountA      *big.Int
	AmountB      *big.Int
	SharesBurned *big.Int
}

// SwapEvent is emitted once per completed swap.
type SwapEvent struct {
	Trader    common.Address
	AssetIn   common.Address
	AssetOut  common.Address
	AmountIn  *big.Int
	AmountOut *big.Int
}

// Sink receives one event per completed pool operation. A sink error never
// rolls back the operation that produced the event; the engine logs it and
// moves on.
type Sink interface {
	Deposited(e DepositEvent) error
	Withdrawn(e WithdrawEvent) error
	Swapped(e SwapEvent) error
}

// Discard is a Sink that drops every event.
type Discard struct{}

func (Discard) Deposited(DepositEvent) error { return nil }

func (Discard) Withdrawn(WithdrawEvent) error { return nil }

func (Discard) Swapped(SwapEvent) error { return nil }
