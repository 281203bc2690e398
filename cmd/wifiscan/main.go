package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wifi_locator/core-go/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wifiscan",
		Short:         "Discover nearby Wi-Fi access points",
		SilenceErrors: true,
		Long: `wifiscan lists the access points (BSSID, SSID, signal) visible from this
machine using whichever wireless tool the platform provides.`,
	}

	rootCmd.AddCommand(cli.ScanCmd())
	rootCmd.AddCommand(cli.InterfacesCmd())
	rootCmd.AddCommand(cli.AdaptersCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
