package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/arloliu/galacticbuf"
	"github.com/arloliu/galacticbuf/internal/config"
	"github.com/arloliu/galacticbuf/internal/observability"
	"github.com/arloliu/galacticbuf/internal/server"
)

const usage = `usage:
  galacticbuf encode <name=value>...   encode fields, print length and hex
  galacticbuf decode <hex>             decode a hex message and print it
  galacticbuf serve [-config path]     run the HTTP order service
  galacticbuf config [-force] <path>   write a starter config file
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "galacticbuf: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "encode":
		return runEncode(args[1:], stdout)
	case "decode":
		return runDecode(args[1:], stdout)
	case "serve":
		return runServe(ctx, args[1:])
	case "config":
		return runConfig(args[1:], stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func runEncode(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: encode needs at least one field", errUsage)
	}

	msg, err := galacticbuf.ParseArgs(args)
	if err != nil {
		return err
	}
	data, err := galacticbuf.Marshal(msg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Encoded message (%d bytes):\n%s\n", len(data), galacticbuf.FormatHex(data))

	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: decode needs a hex string", errUsage)
	}

	data, err := hex.DecodeString(strings.Join(strings.Fields(strings.Join(args, "")), ""))
	if err != nil {
		return fmt.Errorf("parse hex: %w", err)
	}

	msg, err := galacticbuf.Unmarshal(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, msg)

	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	path := fs.String("config", "", "path to a TOML config file (defaults when empty)")
	addr := fs.String("addr", "", "listen address, overrides the config file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	cfg, err := config.Load(*path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger, err := observability.InitLogger(cfg.Name, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

func runConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: config needs exactly one path", errUsage)
	}

	target := fs.Arg(0)
	if err := config.WriteTemplate(target, *force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote config template to %s\n", target)

	return nil
}
