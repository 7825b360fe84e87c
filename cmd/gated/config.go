package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/iov-one/quorum"
)

type fileConfig struct {
	Owners    []string `toml:"owners"`
	Threshold int      `toml:"threshold"`
	Balance   int64    `toml:"balance"`
}

// shellConfig is the normalized gate definition the shell runs with.
type shellConfig struct {
	Owners    []quorum.Address
	Threshold int
	Balance   quorum.Amount
}

func loadShellConfig(path string) (shellConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return shellConfig{}, fmt.Errorf("load gate config: %w", err)
	}

	var cfg shellConfig

	for i, enc := range raw.Owners {
		addr, err := quorum.ParseAddress(enc)
		if err != nil {
			return shellConfig{}, fmt.Errorf("parse owner %d: %w", i, err)
		}
		cfg.Owners = append(cfg.Owners, addr)
	}

	// Default to requiring every owner unless told otherwise.
	cfg.Threshold = len(cfg.Owners)
	if meta.IsDefined("threshold") {
		cfg.Threshold = raw.Threshold
	}

	if meta.IsDefined("balance") {
		cfg.Balance = quorum.Amount(raw.Balance)
		if err := cfg.Balance.Validate(); err != nil {
			return shellConfig{}, fmt.Errorf("opening balance: %w", err)
		}
	}

	return cfg, nil
}
