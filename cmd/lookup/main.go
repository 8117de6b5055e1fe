// Command lookup runs one ticker lookup and prints the payload as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"stock-lens/src/analysis"
	"stock-lens/src/config"
	datasource "stock-lens/src/data_source"
	"stock-lens/src/logger"
	"stock-lens/src/network"
	"stock-lens/src/storage"
)

func main() {
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	statement := flag.String("table", "", "print one statement table (income, balance, cashflow) instead of the payload")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lookup [-config path] [-table kind] TICKER")
		os.Exit(2)
	}

	conf, err := config.NewConfig(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.NewLogger(conf.MConfig, "lookup")
	appLogger.SetOutput(os.Stderr)

	netMgr := network.NewAsyncNetworkManager(conf.MConfig, appLogger.Named("NetworkManager"))
	provider, err := datasource.NewSourceManager(appLogger.Named("SourceManager")).Build(conf.MConfig, netMgr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	facade := analysis.NewLookupFacade(conf.MConfig, provider, storage.NoopDB{}, appLogger.Named("Lookup"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(conf.Provider.TimeoutSeconds)*time.Second)
	defer cancel()

	var out any
	failed := false
	if *statement != "" {
		kind := analysis.ParseStatementKind(*statement)
		if kind == "" {
			fmt.Fprintf(os.Stderr, "unknown statement %q\n", *statement)
			os.Exit(2)
		}
		table, err := facade.Table(ctx, flag.Arg(0), kind, conf.Windows.MaxTableRows, conf.Windows.MaxTableCols, conf.Windows.Transpose)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		out = table
	} else {
		payload := facade.Lookup(ctx, flag.Arg(0))
		out = payload
		failed = payload.Error != nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}
