package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/operatorservice/v1"
)

var (
	listSystem  bool
	listTimeout time.Duration
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the search attributes registered in the namespace",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listSystem, "system", false, "include system search attributes")
	listCmd.Flags().DurationVar(&listTimeout, "timeout", 10*time.Second, "timeout for the list call")
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	operator := e.client.OperatorService()
	if operator == nil {
		return errors.New("temporal operator service not available")
	}
	ctx, cancel := context.WithTimeout(e.ctx, listTimeout)
	defer cancel()
	resp, err := operator.ListSearchAttributes(ctx, &operatorservice.ListSearchAttributesRequest{
		Namespace: e.cfg.Temporal.Namespace,
	})
	if err != nil {
		return fmt.Errorf("list search attributes in %s: %w", e.cfg.Temporal.Namespace, err)
	}
	return renderAttributes(cmd.OutOrStdout(), resp, listSystem)
}

func renderAttributes(w io.Writer, resp *operatorservice.ListSearchAttributesResponse, system bool) error {
	table := tablewriter.NewWriter(w)
	table.Header("Name", "Type", "Kind")
	appendRows := func(attrs map[string]enums.IndexedValueType, kind string) error {
		for _, name := range slices.Sorted(maps.Keys(attrs)) {
			if err := table.Append([]string{name, attrs[name].String(), kind}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := appendRows(resp.GetCustomAttributes(), "custom"); err != nil {
		return err
	}
	if system {
		if err := appendRows(resp.GetSystemAttributes(), "system"); err != nil {
			return err
		}
	}
	return table.Render()
}
