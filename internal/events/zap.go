package events

import "go.uber.org/zap"

// ZapSink writes each pool event as one structured log record.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink creates a sink logging through log.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

func (s *ZapSink) Deposited(e DepositEvent) error {
	s.log.Info("deposit",
		zap.Stringer("holder", e.Holder),
		zap.Stringer("amount_a", e.AmountA),
		zap.Stringer("amount_b", e.AmountB),
		zap.Stringer("shares_minted", e.SharesMinted),
	)
	return nil
}

func (s *ZapSink) Withdrawn(e WithdrawEvent) error {
	s.log.Info("withdraw",
		zap.Stringer("holder", e.Holder),
		zap.Stringer("amount_a", e.AmountA),
		zap.Stringer("amount_b", e.AmountB),
		zap.Stringer("shares_burned", e.SharesBurned),
	)
	return nil
}

func (s *ZapSink) Swapped(e SwapEvent) error {
	s.log.Info("swap",
		zap.Stringer("trader", e.Trader),
		zap.Stringer("asset_in", e.AssetIn),
		zap.Stringer("asset_out", e.AssetOut),
		zap.Stringer("amount_in", e.AmountIn),
		zap.Stringer("amount_out", e.AmountOut),
	)
	return nil
}
