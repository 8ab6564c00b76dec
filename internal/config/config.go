package config

import (
	"log"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from file.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	LogLevel          string        `yaml:"log_level"`

	// AssetA and AssetB identify the pool's trading pair; both are required
	// and must be distinct hex addresses.
	AssetA string `yaml:"asset_a"`
	AssetB string `yaml:"asset_b"`

	// Balances optionally seeds the in-memory ledger at startup.
	Balances []Balance `yaml:"balances"`
}

// Balance seeds one account with an asset amount.
type Balance struct {
	Asset   string `yaml:"asset"`
	Account string `yaml:"account"`
	Amount  string `yaml:"amount"`
}

// Load reads the config from a YAML file path.
// Fails fatally if config is invalid or file is missing.
func Load(path string) Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: os.Open: %v", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			log.Printf("failed to close config file: f.Close: %v", err)
		}
	}(f)

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to parse config file: decoder.Decode: %v", err)
	}

	// Fallbacks
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	return cfg
}

// Validate checks the asset pair fields.
func Validate(cfg Config) error {
	if !common.IsHexAddress(cfg.AssetA) {
		return errors.Errorf("asset_a is not a hex address: %q", cfg.AssetA)
	}
	if !common.IsHexAddress(cfg.AssetB) {
		return errors.Errorf("asset_b is not a hex address: %q", cfg.AssetB)
	}
	a := common.HexToAddress(cfg.AssetA)
	b := common.HexToAddress(cfg.AssetB)
	if a == (common.Address{}) || b == (common.Address{}) {
		return errors.New("asset address is empty")
	}
	if a == b {
		return errors.New("asset_a and asset_b must differ")
	}
	return nil
}
