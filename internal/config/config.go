package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/registry"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL         string
	ChainID        uint64
	PrivateKey     string
	Mnemonic       string
	AccountIndex   uint32
	Router         string
	Factory        string
	Bridge         string
	WrappedNative  string
	ConfirmTimeout time.Duration
	DialRetries    int
	DialBackoff    time.Duration
	Journal        string
	PGDSN          string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TBURN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", registry.HomeChainID)
	v.SetDefault("account-index", 0)
	v.SetDefault("confirm-timeout", 3*time.Minute)
	v.SetDefault("dial-retries", 3)
	v.SetDefault("dial-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:         strings.TrimSpace(v.GetString("rpc")),
		ChainID:        v.GetUint64("chain-id"),
		PrivateKey:     strings.TrimSpace(v.GetString("private-key")),
		Mnemonic:       strings.TrimSpace(v.GetString("mnemonic")),
		AccountIndex:   v.GetUint32("account-index"),
		Router:         v.GetString("router"),
		Factory:        v.GetString("factory"),
		Bridge:         v.GetString("bridge"),
		WrappedNative:  v.GetString("wrapped-native"),
		ConfirmTimeout: v.GetDuration("confirm-timeout"),
		DialRetries:    v.GetInt("dial-retries"),
		DialBackoff:    v.GetDuration("dial-backoff"),
		Journal:        strings.TrimSpace(v.GetString("journal")),
		PGDSN:          strings.TrimSpace(v.GetString("pg-dsn")),
		LogLevel:       v.GetString("log-level"),
	}

	if cfg.PrivateKey != "" && cfg.Mnemonic != "" {
		return Config{}, fmt.Errorf("private-key and mnemonic are mutually exclusive")
	}
	return cfg, nil
}

// RegistryOverrides converts the configured contract addresses into registry overrides.
func (c Config) RegistryOverrides() (registry.Overrides, error) {
	o := registry.Overrides{HomeChainID: c.ChainID}
	fields := []struct {
		name  string
		value string
		dst   *common.Address
	}{
		{"router", c.Router, &o.Router},
		{"factory", c.Factory, &o.Factory},
		{"bridge", c.Bridge, &o.Bridge},
		{"wrapped-native", c.WrappedNative, &o.WrappedNative},
	}
	for _, f := range fields {
		addr, err := ParseAddress(f.value)
		if err != nil {
			return registry.Overrides{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = addr
	}
	return o, nil
}
