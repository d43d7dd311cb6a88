package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"keystone/internal/compat"
)

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "probe",
		Short:       "Report whether the linked primitive library is supported",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipCompat: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := compat.PrimitiveVersion()
			if !ok {
				v = "unknown"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Library:    %s %s\n", compat.PrimitiveModule, v)
			fmt.Fprintf(out, "Required:   >= v%d.%d\n", compat.MinMajor, compat.MinMinor)
			fmt.Fprintf(out, "Compatible: %t\n", compat.IsPrimitiveLibraryCompatible(compat.MinMajor, compat.MinMinor))
			return nil
		},
	}
}
