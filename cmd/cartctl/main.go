package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/yuzvak/rocketshoes-cart/internal/app"
	"github.com/yuzvak/rocketshoes-cart/internal/config"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/cart"
	"github.com/yuzvak/rocketshoes-cart/internal/domain/notification"
	"github.com/yuzvak/rocketshoes-cart/internal/infrastructure/notify"
	"github.com/yuzvak/rocketshoes-cart/internal/pkg/logger"
)

type options struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Inspect and change the RocketShoes cart from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "config.json", "path to configuration file (JSON or TOML)")
	flags.StringVar(&opts.logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, opts, func(ctx context.Context, a *app.App) cart.Cart {
					return a.Store.Cart()
				})
			},
		},
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withStore(cmd, opts, func(ctx context.Context, a *app.App) cart.Cart {
					return a.Store.AddProduct(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return withStore(cmd, opts, func(ctx context.Context, a *app.App) cart.Cart {
					return a.Store.RemoveProduct(ctx, id)
				})
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <amount>",
			Short: "Set the amount of a product in the cart",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				amount, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[1])
				}
				return withStore(cmd, opts, func(ctx context.Context, a *app.App) cart.Cart {
					return a.Store.UpdateProductAmount(ctx, id, amount)
				})
			},
		},
	)

	return root
}

// withStore loads the configured cart, runs op and prints the resulting cart
// on stdout and any notifications on stderr.
func withStore(cmd *cobra.Command, opts *options, op func(ctx context.Context, a *app.App) cart.Cart) error {
	cfg, err := loadConfig(cmd.Flags(), opts.configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Level: opts.logLevel, Console: true, Output: cmd.ErrOrStderr()})

	stderr := cmd.ErrOrStderr()
	printNotification := notify.SinkFunc(func(_ context.Context, n notification.Notification) error {
		_, err := fmt.Fprintf(stderr, "%s: %s\n", n.Severity, n.Message)
		return err
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.Build(ctx, cfg, log, printNotification)
	if err != nil {
		return err
	}
	defer a.Close()

	result := op(ctx, a)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadConfig reads the config file. A missing file is only tolerated when the
// flag was left at its default.
func loadConfig(flags *pflag.FlagSet, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) && !flags.Changed("config") {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("load config: %w", err)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}
