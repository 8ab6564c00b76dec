package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"ammpool/internal/pool"
	"ammpool/internal/transport/http/validate"
)

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, code, err := validate.DepositRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	minted, err := s.pool.Deposit(ctx, req.Holder, req.AmountA, req.AmountB)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, map[string]string{"shares": minted.String()})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, code, err := validate.WithdrawRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	amountA, amountB, err := s.pool.Withdraw(ctx, req.Holder, req.Shares)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, map[string]string{
		"amount_a": amountA.String(),
		"amount_b": amountB.String(),
	})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, code, err := validate.SwapRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}

	aToB, ok := s.direction(req.AssetIn)
	if !ok {
		http.Error(w, "asset_in is not from pool", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	out, err := s.pool.Swap(ctx, req.Trader, aToB, req.AmountIn)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, map[string]string{"amount_out": out.String()})
}

// direction maps an input asset to the swap direction; ok is false when the
// asset is not part of the pool's pair.
func (s *Server) direction(assetIn common.Address) (aToB, ok bool) {
	a, b := s.pool.Assets()
	switch assetIn {
	case a:
		return true, true
	case b:
		return false, true
	}
	return false, false
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pool.ErrInvalidAmount),
		errors.Is(err, pool.ErrRatioMismatch),
		errors.Is(err, pool.ErrInsufficientShares),
		errors.Is(err, pool.ErrEmptyPool),
		errors.Is(err, pool.ErrAmountTooSmall):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, pool.ErrTransferFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response write error", zap.Error(err))
	}
}
