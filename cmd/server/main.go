package main

import (
	"log"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ammpool/internal/config"
	"ammpool/internal/events"
	"ammpool/internal/ledger"
	"ammpool/internal/pool"
	transport "ammpool/internal/transport/http"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg := config.Load(path)

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("buildLogger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	mem := ledger.NewMemory()
	for _, b := range cfg.Balances {
		amount, ok := new(big.Int).SetString(b.Amount, 10)
		if !ok || amount.Sign() < 0 {
			logger.Fatal("bad seed balance", zap.String("amount", b.Amount))
		}
		mem.SetBalance(common.HexToAddress(b.Asset), common.HexToAddress(b.Account), amount)
	}

	p, err := pool.New(
		common.HexToAddress(cfg.AssetA),
		common.HexToAddress(cfg.AssetB),
		mem,
		events.NewZapSink(logger.Named("events")),
		logger,
	)
	if err != nil {
		logger.Fatal("pool.New", zap.Error(err))
	}

	srv := transport.NewServer(p, cfg, logger)
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Fatal("srv.ListenAndServe", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
