package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wifi_locator/core-go/internal/discovery"
)

// ScanCmd returns the scan command.
func ScanCmd() *cobra.Command {
	var (
		building string
		room     string
		preset   string
		only     []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:          "scan",
		Short:        "Discover nearby Wi-Fi access points",
		SilenceUsage: true,
		Long: `Run the adapter chain for this platform and print the access points found
by the first adapter that yields any.

When nothing is found, every attempted adapter is listed with its output and
the command exits non-zero.

Examples:
  wifiscan scan --building HQ --room 2.01
  wifiscan scan --preset fast --only nmcli,iw
  wifiscan scan --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !discovery.IsKnownPreset(preset) {
				return fmt.Errorf("unknown preset %q (want fast, normal or deep)", preset)
			}
			if unknown := discovery.ValidateAdapterNames(only); len(unknown) > 0 {
				return fmt.Errorf("unknown adapters: %v", unknown)
			}

			svc, err := buildService(cmd)
			if err != nil {
				return err
			}

			res := svc.Discover(cmd.Context(), discovery.Request{
				Location: discovery.Location{Building: building, Room: room},
				Preset:   preset,
				Only:     only,
			})

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else if res.Outcome == discovery.OutcomeSucceeded {
				renderRecords(out, res)
			} else {
				renderDiagnostic(out, res.Diagnostic)
			}

			return res.Err()
		},
	}

	cmd.Flags().StringVar(&building, "building", "", "Building the scan is taken in (logged only)")
	cmd.Flags().StringVar(&room, "room", "", "Room the scan is taken in (logged only)")
	cmd.Flags().StringVar(&preset, "preset", "", "Scan preset: fast, normal or deep")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict the chain to these adapters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	addServiceFlags(cmd)

	return cmd
}
