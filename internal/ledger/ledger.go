package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger defines the external custody collaborator: it moves asset units
// between holder accounts and the pool's custody account. Both calls are
// atomic — funds are either fully moved or not at all — and a returned error
// means nothing moved.
type Ledger interface {
	// TransferIn moves amount of asset from the holder's account into pool custody.
	TransferIn(ctx context.Context, asset, from common.Address, amount *big.Int) error
	// TransferOut moves amount of asset from pool custody to the holder's account.
	TransferOut(ctx context.Context, asset, to common.Address, amount *big.Int) error
}
