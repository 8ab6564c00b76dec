package ledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAmount is returned when a transfer amount is nil or not positive.
	ErrInvalidAmount = errors.New("invalid transfer amount")

	// ErrInsufficientFunds is returned when the debited account does not hold
	// enough of the asset.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Memory is an in-process Ledger: per-asset account balances plus one custody
// balance per asset, all guarded by a single mutex so each transfer is atomic.
type Memory struct {
	mu       sync.Mutex
	accounts map[common.Address]map[common.Address]*big.Int // asset -> account -> balance
	custody  map[common.Address]*big.Int                    // asset -> pool custody balance
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[common.Address]map[common.Address]*big.Int),
		custody:  make(map[common.Address]*big.Int),
	}
}

// SetBalance overwrites the account's balance of asset. Used for seeding.
func (m *Memory) SetBalance(asset, account common.Address, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accs := m.accounts[asset]
	if accs == nil {
		accs = make(map[common.Address]*big.Int)
		m.accounts[asset] = accs
	}
	accs[account] = new(big.Int).Set(amount)
}

// Balance returns a copy of the account's balance of asset.
func (m *Memory) Balance(asset, account common.Address) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b := m.accounts[asset][account]; b != nil {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Custody returns a copy of the pool's custody balance of asset.
func (m *Memory) Custody(asset common.Address) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b := m.custody[asset]; b != nil {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// TransferIn debits the holder's account and credits pool custody.
func (m *Memory) TransferIn(ctx context.Context, asset, from common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bal := m.accounts[asset][from]
	if bal == nil || bal.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientFunds, "account %s asset %s", from.Hex(), asset.Hex())
	}
	bal.Sub(bal, amount)

	cust := m.custody[asset]
	if cust == nil {
		cust = new(big.Int)
		m.custody[asset] = cust
	}
	cust.Add(cust, amount)
	return nil
}

// TransferOut debits pool custody and credits the holder's account.
func (m *Memory) TransferOut(ctx context.Context, asset, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cust := m.custody[asset]
	if cust == nil || cust.Cmp(amount) < 0 {
		return errors.Wrapf(ErrInsufficientFunds, "custody asset %s", asset.Hex())
	}
	cust.Sub(cust, amount)

	accs := m.accounts[asset]
	if accs == nil {
		accs = make(map[common.Address]*big.Int)
		m.accounts[asset] = accs
	}
	bal := accs[to]
	if bal == nil {
		bal = new(big.Int)
		accs[to] = bal
	}
	bal.Add(bal, amount)
	return nil
}
