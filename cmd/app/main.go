package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/akyairhashvil/applock/internal/app"
	"github.com/akyairhashvil/applock/internal/config"
	"github.com/akyairhashvil/applock/internal/lock"
	"github.com/akyairhashvil/applock/internal/util"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "set-pin":
			os.Exit(runSetPin(cfg))
		default:
			fmt.Fprintf(os.Stderr, "usage: %s [set-pin]\n", config.AppName)
			os.Exit(2)
		}
	}

	fx.New(
		app.Module(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
	).Run()
}

func loadConfig() (*config.Config, error) {
	dir := util.DataDir(config.AppName)
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir != dir {
		if err := util.EnsureDir(cfg.DataDir); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return cfg, nil
}

// runSetPin sets the PIN from the terminal before the UI ever starts, so a
// user can configure a fallback on a host without biometrics.
func runSetPin(cfg *config.Config) int {
	var svc *lock.Service
	fxApp := fx.New(app.CoreModule(cfg), fx.NopLogger, fx.Populate(&svc))
	ctx := context.Background()
	if err := fxApp.Start(ctx); err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		return 1
	}
	defer func() { _ = fxApp.Stop(ctx) }()

	pin, err := confirmPin(promptForPin)
	if err != nil {
		fmt.Printf("%v\n", err)
		return 1
	}
	if err := svc.SetPin(ctx, pin); err != nil {
		fmt.Printf("Could not set PIN: %v\n", err)
		return 1
	}
	fmt.Println("PIN saved.")
	return 0
}

var errPinMismatch = errors.New("PINs do not match")

// confirmPin asks for the PIN twice and validates it.
func confirmPin(read func(prompt string) (string, error)) (string, error) {
	pin, err := read(fmt.Sprintf("New PIN (%d-%d digits): ", config.MinPinLength, config.MaxPinLength))
	if err != nil {
		return "", err
	}
	if err := util.ValidatePin(pin); err != nil {
		return "", err
	}
	again, err := read("Confirm PIN: ")
	if err != nil {
		return "", err
	}
	if again != pin {
		return "", errPinMismatch
	}
	return pin, nil
}

func promptForPin(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pin)), err
}
