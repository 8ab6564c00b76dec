package validate

import (
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"ammpool/internal/transport/http/dto"
)

// DepositRequestValidate validates a /deposit request body and returns dto.
func DepositRequestValidate(r *http.Request) (*dto.DepositRequest, int, error) {
	var body struct {
		Holder  string `json:"holder"`
		AmountA string `json:"amount_a"`
		AmountB string `json:"amount_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "bad body")
	}

	holder, err := parseAddr(body.Holder, "holder")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountA, err := parseAmount(body.AmountA, "amount_a")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountB, err := parseAmount(body.AmountB, "amount_b")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.DepositRequest{Holder: holder, AmountA: amountA, AmountB: amountB}, 0, nil
}

// WithdrawRequestValidate validates a /withdraw request body and returns dto.
func WithdrawRequestValidate(r *http.Request) (*dto.WithdrawRequest, int, error) {
	var body struct {
		Holder string `json:"holder"`
		Shares string `json:"shares"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "bad body")
	}

	holder, err := parseAddr(body.Holder, "holder")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	shares, err := parseAmount(body.Shares, "shares")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.WithdrawRequest{Holder: holder, Shares: shares}, 0, nil
}

// SwapRequestValidate validates a /swap request body and returns dto.
func SwapRequestValidate(r *http.Request) (*dto.SwapRequest, int, error) {
	var body struct {
		Trader   string `json:"trader"`
		AssetIn  string `json:"asset_in"`
		AmountIn string `json:"amount_in"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, http.StatusBadRequest, errors.Wrap(err, "bad body")
	}

	trader, err := parseAddr(body.Trader, "trader")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	assetIn, err := parseAddr(body.AssetIn, "asset_in")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountIn, err := parseAmount(body.AmountIn, "amount_in")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.SwapRequest{Trader: trader, AssetIn: assetIn, AmountIn: amountIn}, 0, nil
}

// QuoteRequestValidate validates /quote query params and returns dto.
func QuoteRequestValidate(r *http.Request) (*dto.QuoteRequest, int, error) {
	q := r.URL.Query()

	assetIn, err := parseAddr(q.Get("asset_in"), "asset_in")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountIn, err := parseAmount(q.Get("amount_in"), "amount_in")
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	return &dto.QuoteRequest{AssetIn: assetIn, AmountIn: amountIn}, 0, nil
}

// HolderValidate validates the holder query param of /shares.
func HolderValidate(r *http.Request) (common.Address, int, error) {
	holder, err := parseAddr(r.URL.Query().Get("holder"), "holder")
	if err != nil {
		return common.Address{}, http.StatusBadRequest, err
	}
	return holder, 0, nil
}

func parseAddr(s, field string) (common.Address, error) {
	if s == "" {
		return common.Address{}, errors.Errorf("missing %s", field)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("bad %s address format", field)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, errors.Errorf("empty %s address", field)
	}
	return addr, nil
}

func parseAmount(s, field string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Errorf("missing %s", field)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() <= 0 {
		return nil, errors.Errorf("bad %s", field)
	}
	return v, nil
}
