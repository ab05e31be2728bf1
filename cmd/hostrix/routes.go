package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/splax/hostrix/internal/catalog"
	httpx "github.com/splax/hostrix/internal/http"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the dashboard route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
}

func printRoutes(out io.Writer) error {
	projects, err := catalog.Default(time.Now())
	if err != nil {
		return err
	}
	router, err := httpx.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), projects, nil, httpx.Options{})
	if err != nil {
		return err
	}
	defer router.Close()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHODS\tPATH")
	for _, route := range router.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", route.Name, strings.Join(route.Methods, ","), route.Path)
	}
	return tw.Flush()
}
