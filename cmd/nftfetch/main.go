// Command nftfetch runs a single NFT fetch and prints the result as JSON.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nft_grinder/internal/app/bootstrap"
	"nft_grinder/internal/config"
	"nft_grinder/internal/infrastructure/walletloader"
	"nft_grinder/internal/pkg/logger"
	"nft_grinder/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	flag "github.com/spf13/pflag"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	os.Exit(run())
}

func run() int {
	var (
		wallets     []string
		chains      []string
		walletsFile string
		configPath  string
		logLevel    string
		pretty      bool
	)
	flag.StringSliceVarP(&wallets, "wallet", "w", nil, "wallet address (repeatable or comma-separated)")
	flag.StringSliceVarP(&chains, "chain", "c", nil, "chain id, e.g. eth-mainnet (repeatable or comma-separated)")
	flag.StringVar(&walletsFile, "wallets-file", "", "file with one wallet address per line")
	flag.StringVar(&configPath, "config", utils.GetEnv("CONFIG_PATH", ""), "path to config.yaml (defaults only when empty)")
	flag.StringVar(&logLevel, "log-level", "", "override logging.level")
	flag.BoolVar(&pretty, "pretty", false, "indent JSON output")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			return 2
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.InitSlog(cfg.Logging.Level)
	defer logger.Sync()
	appLogger := logger.NewSlogAdapter()

	if walletsFile != "" {
		fromFile, err := walletloader.NewWalletFileLoader(walletsFile, appLogger.Info).GetWallets()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load wallets: %v\n", err)
			return 2
		}
		wallets = append(wallets, fromFile...)
	}
	wallets = utils.SplitList(wallets...)
	chains = utils.SplitList(chains...)
	if len(chains) == 0 {
		chains = cfg.Fetch.DefaultChains
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.Build(cfg, logger.Zap(), appLogger)
	result := app.NFTService.FetchAll(ctx, wallets, chains)

	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		return 2
	}
	fmt.Println(string(out))

	if !result.Success {
		return 1
	}
	return 0
}
