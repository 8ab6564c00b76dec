package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DepositRequest represents a parsed HTTP request for the /deposit endpoint.
type DepositRequest struct {
	Holder  common.Address
	AmountA *big.Int
	AmountB *big.Int
}

// WithdrawRequest represents a parsed HTTP request for the /withdraw endpoint.
type WithdrawRequest struct {
	Holder common.Address
	Shares *big.Int
}

// SwapRequest represents a parsed HTTP request for the /swap endpoint.
type SwapRequest struct {
	Trader   common.Address
	AssetIn  common.Address
	AmountIn *big.Int
}

// QuoteRequest represents a parsed HTTP request for the /quote endpoint.
type QuoteRequest struct {
	AssetIn  common.Address
	AmountIn *big.Int
}
