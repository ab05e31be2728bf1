package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hostrix",
		Short: "Hostrix deployment dashboard",
		Long: `hostrix serves the Hostrix web dashboard: landing page, sign-in,
sign-up and verification forms, the project overview and the deployment
configuration form. Projects come from a mock fixture; no backend is called.`,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "hostrix version %s\n" .Version}}`)
	root.AddCommand(newServeCmd())
	root.AddCommand(newRoutesCmd())
	return root
}
