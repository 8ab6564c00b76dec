package pool

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ammpool/internal/ammmath"
	"ammpool/internal/events"
	"ammpool/internal/ledger"
)

// Pool is a two-asset constant-product market maker. It owns the reserve
// balances and the per-holder share ledger and is the only writer of both.
// All mutating operations are serialized behind one lock; read-only queries
// run concurrently against a consistent snapshot.
type Pool struct {
	assetA common.Address
	assetB common.Address

	ledger ledger.Ledger
	sink   events.Sink
	log    *zap.Logger

	mu          sync.RWMutex
	reserveA    *big.Int
	reserveB    *big.Int
	totalShares *big.Int
	shares      map[common.Address]*big.Int
}

// New creates an empty pool for the (assetA, assetB) pair. The ledger is
// required; a nil sink discards events.
func New(assetA, assetB common.Address, l ledger.Ledger, sink events.Sink, log *zap.Logger) (*Pool, error) {
	if assetA == (common.Address{}) || assetB == (common.Address{}) {
		return nil, errors.New("asset address is empty")
	}
	if assetA == assetB {
		return nil, errors.New("assets must differ")
	}
	if l == nil {
		return nil, errors.New("ledger is nil")
	}
	if sink == nil {
		sink = events.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Pool{
		assetA:      assetA,
		assetB:      assetB,
		ledger:      l,
		sink:        sink,
		log:         log,
		reserveA:    new(big.Int),
		reserveB:    new(big.Int),
		totalShares: new(big.Int),
		shares:      make(map[common.Address]*big.Int),
	}, nil
}

// Deposit moves amountA and amountB from the holder into pool custody and
// mints ownership shares. The first deposit seeds the pool and sets the
// exchange rate, minting sqrt(amountA*amountB) shares; later deposits must
// match the current reserve ratio exactly and mint proportionally. A deposit
// that would mint zero shares is rejected.
func (p *Pool) Deposit(ctx context.Context, holder common.Address, amountA, amountB *big.Int) (*big.Int, error) {
	if holder == (common.Address{}) || !positive(amountA) || !positive(amountB) {
		return nil, ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var minted *big.Int
	if p.totalShares.Sign() == 0 {
		// Seeding deposit: the initial rate is caller-chosen and unchecked.
		minted = ammmath.Sqrt(new(big.Int).Mul(amountA, amountB))
	} else {
		required := ammmath.MulDiv(amountA, p.reserveB, p.reserveA)
		if required.Cmp(amountB) != 0 {
			return nil, errors.Wrapf(ErrRatioMismatch,
				"%s of asset A requires %s of asset B, got %s", amountA, required, amountB)
		}
		minted = ammmath.MulDiv(amountA, p.totalShares, p.reserveA)
	}
	if minted.Sign() == 0 {
		return nil, errors.Wrap(ErrAmountTooSmall, "deposit mints zero shares")
	}

	if err := p.ledger.TransferIn(ctx, p.assetA, holder, amountA); err != nil {
		return nil, multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer in asset A"))
	}
	if err := p.ledger.TransferIn(ctx, p.assetB, holder, amountB); err != nil {
		err = multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer in asset B"))
		// Hand the first leg back so the aborted deposit moved nothing.
		if rbErr := p.ledger.TransferOut(ctx, p.assetA, holder, amountA); rbErr != nil {
			p.log.Error("deposit refund failed", zap.Stringer("holder", holder), zap.Error(rbErr))
			return nil, multierr.Append(err, errors.Wrap(rbErr, "refund asset A"))
		}
		return nil, err
	}

	bal := p.shares[holder]
	if bal == nil {
		bal = new(big.Int)
		p.shares[holder] = bal
	}
	bal.Add(bal, minted)
	p.totalShares.Add(p.totalShares, minted)
	p.reserveA.Add(p.reserveA, amountA)
	p.reserveB.Add(p.reserveB, amountB)

	if err := p.sink.Deposited(events.DepositEvent{
		Holder:       holder,
		AmountA:      cp(amountA),
		AmountB:      cp(amountB),
		SharesMinted: cp(minted),
	}); err != nil {
		p.log.Warn("event sink failed", zap.Error(err))
	}

	return minted, nil
}

// Withdraw burns shareAmount of the holder's shares and pays out the
// proportional slice of both reserves. Shares and reserves are debited before
// the ledger is called, so a re-entering holder cannot spend the same shares
// twice; a declined transfer rolls the debit back.
func (p *Pool) Withdraw(ctx context.Context, holder common.Address, shareAmount *big.Int) (*big.Int, *big.Int, error) {
	if holder == (common.Address{}) || !positive(shareAmount) {
		return nil, nil, ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	held := p.shares[holder]
	if held == nil || held.Cmp(shareAmount) < 0 {
		return nil, nil, errors.Wrapf(ErrInsufficientShares, "burning %s", shareAmount)
	}

	amountA := ammmath.MulDiv(shareAmount, p.reserveA, p.totalShares)
	amountB := ammmath.MulDiv(shareAmount, p.reserveB, p.totalShares)
	if amountA.Sign() == 0 || amountB.Sign() == 0 {
		return nil, nil, errors.Wrap(ErrAmountTooSmall, "withdrawal returns zero of a reserve")
	}

	held.Sub(held, shareAmount)
	p.totalShares.Sub(p.totalShares, shareAmount)
	p.reserveA.Sub(p.reserveA, amountA)
	p.reserveB.Sub(p.reserveB, amountB)

	restore := func() {
		held.Add(held, shareAmount)
		p.totalShares.Add(p.totalShares, shareAmount)
		p.reserveA.Add(p.reserveA, amountA)
		p.reserveB.Add(p.reserveB, amountB)
	}

	if err := p.ledger.TransferOut(ctx, p.assetA, holder, amountA); err != nil {
		restore()
		return nil, nil, multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer out asset A"))
	}
	if err := p.ledger.TransferOut(ctx, p.assetB, holder, amountB); err != nil {
		err = multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer out asset B"))
		if rbErr := p.ledger.TransferIn(ctx, p.assetA, holder, amountA); rbErr != nil {
			// The paid-out leg cannot be reclaimed: custody and state no
			// longer agree. Surface both failures.
			p.log.Error("withdraw rollback failed", zap.Stringer("holder", holder), zap.Error(rbErr))
			return nil, nil, multierr.Append(err, errors.Wrap(rbErr, "reclaim asset A"))
		}
		restore()
		return nil, nil, err
	}

	if err := p.sink.Withdrawn(events.WithdrawEvent{
		Holder:       holder,
		AmountA:      cp(amountA),
		AmountB:      cp(amountB),
		SharesBurned: cp(shareAmount),
	}); err != nil {
		p.log.Warn("event sink failed", zap.Error(err))
	}

	return amountA, amountB, nil
}

// Swap trades amountIn of one asset for the other along the constant-product
// curve. aToB selects the direction: true trades asset A in for asset B out.
// The 0.3% fee stays in the reserves, so reserveA*reserveB never decreases
// across a swap. A zero computed output aborts the trade.
func (p *Pool) Swap(ctx context.Context, trader common.Address, aToB bool, amountIn *big.Int) (*big.Int, error) {
	if trader == (common.Address{}) || !positive(amountIn) {
		return nil, ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reserveA.Sign() == 0 || p.reserveB.Sign() == 0 {
		return nil, ErrEmptyPool
	}

	reserveIn, reserveOut := p.reserveA, p.reserveB
	assetIn, assetOut := p.assetA, p.assetB
	if !aToB {
		reserveIn, reserveOut = p.reserveB, p.reserveA
		assetIn, assetOut = p.assetB, p.assetA
	}

	// Quote on the pre-trade reserve snapshot.
	out, ok := ammmath.Quote(amountIn, reserveIn, reserveOut)
	if !ok || out.Sign() == 0 {
		return nil, errors.Wrap(ErrAmountTooSmall, "swap output is zero")
	}

	if err := p.ledger.TransferIn(ctx, assetIn, trader, amountIn); err != nil {
		return nil, multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer in"))
	}

	reserveIn.Add(reserveIn, amountIn)
	reserveOut.Sub(reserveOut, out)

	if err := p.ledger.TransferOut(ctx, assetOut, trader, out); err != nil {
		reserveIn.Sub(reserveIn, amountIn)
		reserveOut.Add(reserveOut, out)
		err = multierr.Append(ErrTransferFailed, errors.Wrap(err, "transfer out"))
		if rbErr := p.ledger.TransferOut(ctx, assetIn, trader, amountIn); rbErr != nil {
			p.log.Error("swap refund failed", zap.Stringer("trader", trader), zap.Error(rbErr))
			return nil, multierr.Append(err, errors.Wrap(rbErr, "refund"))
		}
		return nil, err
	}

	if err := p.sink.Swapped(events.SwapEvent{
		Trader:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  cp(amountIn),
		AmountOut: cp(out),
	}); err != nil {
		p.log.Warn("event sink failed", zap.Error(err))
	}

	return out, nil
}

// Quote computes the swap output for amountIn against the current reserves
// without touching state.
func (p *Pool) Quote(aToB bool, amountIn *big.Int) (*big.Int, error) {
	if !positive(amountIn) {
		return nil, ErrInvalidAmount
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.reserveA.Sign() == 0 || p.reserveB.Sign() == 0 {
		return nil, ErrEmptyPool
	}

	reserveIn, reserveOut := p.reserveA, p.reserveB
	if !aToB {
		reserveIn, reserveOut = p.reserveB, p.reserveA
	}

	out, ok := ammmath.Quote(amountIn, reserveIn, reserveOut)
	if !ok || out.Sign() == 0 {
		return nil, errors.Wrap(ErrAmountTooSmall, "swap output is zero")
	}
	return out, nil
}

// Assets returns the pool's asset pair.
func (p *Pool) Assets() (common.Address, common.Address) {
	return p.assetA, p.assetB
}

// Reserves returns copies of the current reserve pair.
func (p *Pool) Reserves() (*big.Int, *big.Int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cp(p.reserveA), cp(p.reserveB)
}

// TotalShares returns a copy of the outstanding share total.
func (p *Pool) TotalShares() *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cp(p.totalShares)
}

// SharesOf returns a copy of the holder's share balance; zero for unknown holders.
func (p *Pool) SharesOf(holder common.Address) *big.Int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if bal := p.shares[holder]; bal != nil {
		return cp(bal)
	}
	return new(big.Int)
}

// Price returns reserveB scaled by ammmath.PriceUnit and divided by reserveA.
func (p *Pool) Price() (*big.Int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.reserveA.Sign() == 0 {
		return nil, ErrEmptyPool
	}
	return ammmath.MulDiv(p.reserveB, ammmath.PriceUnit, p.reserveA), nil
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}

func cp(v *big.Int) *big.Int {
	return new(big.Int).Set(v)
}
