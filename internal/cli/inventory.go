package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wifi_locator/core-go/internal/ifaces"
)

// InterfacesCmd returns the interfaces command.
func InterfacesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "interfaces",
		Short: "List wireless interfaces and how they were found",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			found, tier := svc.Interfaces(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				if found == nil {
					found = []ifaces.Interface{}
				}
				return json.NewEncoder(out).Encode(map[string]any{"tier": tier, "interfaces": found})
			}

			if len(found) == 0 {
				fmt.Fprintln(out, color.New(color.FgYellow).Sprint("⚠ no wireless interfaces found"))
				return nil
			}
			fmt.Fprintf(out, "Found via %s:\n", color.New(color.FgCyan).Sprint(tier))
			for _, i := range found {
				fmt.Fprintf(out, "  %s\n", i.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	addServiceFlags(cmd)
	return cmd
}

// AdaptersCmd returns the adapters command.
func AdaptersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "List the adapter catalog in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			list := svc.Adapters()
			out := cmd.OutOrStdout()

			if asJSON {
				return json.NewEncoder(out).Encode(list)
			}

			fmt.Fprintf(out, "Adapters for %s:\n", svc.GOOS())
			for _, a := range list {
				fmt.Fprintf(out, "  %-16s %s  %s\n", a.Name, adapterStatus(a.Applicable, a.Enabled), a.Command)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	addServiceFlags(cmd)
	return cmd
}

func adapterStatus(applicable, enabled bool) string {
	switch {
	case applicable && enabled:
		return color.New(color.FgHiGreen).Sprintf("%-10s", "active")
	case applicable:
		return color.New(color.FgYellow).Sprintf("%-10s", "disabled")
	default:
		return color.New(color.FgHiBlack).Sprintf("%-10s", "n/a")
	}
}
