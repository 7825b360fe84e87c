package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/gate"
)

func main() {
	configPath := flag.String("config", "gate.toml", "path to the gate definition file")
	flag.Parse()

	if err := run(*configPath, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "gated: %v\n", err)
		os.Exit(1)
	}
}

// shell is one interactive session over a freshly constructed gate. All
// state lives in memory and is gone when the session ends.
type shell struct {
	cfg    shellConfig
	ledger *gate.Ledger
	pool   *gate.Pool
	gate   *gate.Gate
	out    io.Writer
}

func run(configPath string, in io.Reader, out, errOut io.Writer) error {
	cfg, err := loadShellConfig(configPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: errOut}).With().Timestamp().Logger()
	sink := quorum.NewLogSink(logger)

	reg, err := gate.NewRegistry(cfg.Owners, cfg.Threshold)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	s := &shell{
		cfg:    cfg,
		ledger: gate.NewLedger(reg, sink),
		pool:   gate.NewPool(sink),
		out:    out,
	}
	s.gate = gate.NewGate(reg, s.ledger, gate.NewPoolDispatcher(s.pool), sink)

	if cfg.Balance > 0 {
		opening := quorum.NewAddress([]byte("gated/opening-balance"))
		if err := s.pool.Deposit(opening, cfg.Balance); err != nil {
			return fmt.Errorf("opening balance: %w", err)
		}
	}

	fmt.Fprintf(out, "gate ready: %d owners, threshold %d, balance %d\n",
		len(cfg.Owners), reg.Threshold(), s.pool.Balance())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := s.eval(line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func (s *shell) eval(line string) error {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help":
		fmt.Fprint(s.out, usage)
		return nil
	case "owners":
		for i, o := range s.cfg.Owners {
			fmt.Fprintf(s.out, "#%d %s\n", i, o)
		}
		return nil
	case "balance":
		fmt.Fprintf(s.out, "%d\n", s.pool.Balance())
		return nil
	case "deposit":
		return s.deposit(args)
	case "submit":
		return s.submit(args)
	case "confirm":
		return s.withIndex(args, s.ledger.Confirm)
	case "revoke":
		return s.withIndex(args, s.ledger.Revoke)
	case "execute":
		return s.withIndex(args, s.gate.Execute)
	case "show":
		return s.show(args)
	case "list":
		return s.list()
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *shell) deposit(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: deposit <sender> <amount>")
	}
	sender, err := s.address(args[0])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	return s.pool.Deposit(sender, quorum.Amount(amount))
}

func (s *shell) submit(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: submit <caller> <target> <amount> [payload-hex]")
	}
	caller, err := s.address(args[0])
	if err != nil {
		return err
	}
	target, err := s.address(args[1])
	if err != nil {
		return err
	}
	amount, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}
	var payload []byte
	if len(args) == 4 {
		if payload, err = hex.DecodeString(args[3]); err != nil {
			return fmt.Errorf("parse payload: %w", err)
		}
	}

	index, err := s.ledger.Submit(caller, target, quorum.Amount(amount), payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "submitted as #%d\n", index)
	return nil
}

func (s *shell) withIndex(args []string, op func(quorum.Address, uint64) error) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: <command> <caller> <index>")
	}
	caller, err := s.address(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parse index: %w", err)
	}
	return op(caller, index)
}

func (s *shell) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <index>")
	}
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse index: %w", err)
	}
	snap, err := s.ledger.Get(index)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n", raw)
	return nil
}

func (s *shell) list() error {
	count := s.ledger.Count()
	for i := uint64(0); i < count; i++ {
		snap, err := s.ledger.Get(i)
		if err != nil {
			return err
		}
		state := "pending"
		if snap.Executed {
			state = "executed"
		}
		fmt.Fprintf(s.out, "#%d -> %s amount=%d confirmations=%d %s\n",
			snap.Index, snap.Target, snap.Amount, snap.Confirmations, state)
	}
	return nil
}

// address resolves a command argument into an identity. Owners can be
// referenced by their position as #N, everyone else by a hex address.
func (s *shell) address(arg string) (quorum.Address, error) {
	if strings.HasPrefix(arg, "#") {
		i, err := strconv.Atoi(arg[1:])
		if err != nil || i < 0 || i >= len(s.cfg.Owners) {
			return nil, fmt.Errorf("unknown owner %q", arg)
		}
		return s.cfg.Owners[i], nil
	}
	return quorum.ParseAddress(arg)
}

const usage = `commands:
  owners                                     list owner identities
  balance                                    print the pooled balance
  deposit <sender> <amount>                  credit the pool
  submit <caller> <target> <amount> [hex]    queue a new action
  confirm <caller> <index>                   approve an action
  revoke <caller> <index>                    withdraw an approval
  execute <caller> <index>                   dispatch once quorum is met
  show <index>                               print one entry as JSON
  list                                       print all entries
  quit                                       leave the shell
addresses are hex encoded, owners can be shortened to #0, #1, ...
`
