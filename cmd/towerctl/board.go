package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var vendorsCmd = &cobra.Command{
	Use:   "vendors [id]",
	Short: "List carrier partners, or show one vendor's performance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		out := cmd.OutOrStdout()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vendor id %q", args[0])
			}
			perf, err := guard.Client().VendorPerformance(cmd.Context(), id)
			if err != nil {
				return err
			}
			if perf.Message != "" {
				fmt.Fprintln(out, perf.Message)
				return nil
			}
			fmt.Fprintf(out, "on-time %.1f%%  exceptions %.1f%%  shipments %d  (as of %s)\n",
				perf.OnTimeRate, perf.ExceptionRate, perf.TotalShipments, perf.CalculationDate)
			return nil
		}

		vendors, err := guard.Client().Vendors(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCITY\tCONTACT\tACTIVE")
		for _, v := range vendors {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", v.ID, v.Name, v.City, v.ContactEmail, v.IsActive)
		}
		return w.Flush()
	},
}

var hubsCmd = &cobra.Command{
	Use:   "hubs",
	Short: "Show the hub status board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		hubs, err := guard.Client().HubStatuses(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tCITY\tSTATUS\tUPDATED")
		for _, h := range hubs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.HubCode, h.HubName, h.City, h.Status, h.LastUpdated)
		}
		return w.Flush()
	},
}

var flagExceptionsLimit int

var exceptionsCmd = &cobra.Command{
	Use:   "exceptions",
	Short: "Show the live exception feed and per-type counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		out := cmd.OutOrStdout()

		feed, err := guard.Client().LiveExceptions(cmd.Context(), flagExceptionsLimit)
		if err != nil {
			return err
		}
		for _, e := range feed {
			fmt.Fprintf(out, "[%s] #%d %s: %s (%s->%s)\n",
				e.RaisedAt, e.ShipmentID, e.ExceptionType, e.Message, e.OriginCity, e.DestinationCity)
		}

		counts, err := guard.Client().ExceptionsByType(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range counts {
			fmt.Fprintf(out, "%-20s %d\n", c.Type, c.Value)
		}
		return nil
	},
}

var podCmd = &cobra.Command{
	Use:   "pod <query>",
	Short: "Search proof-of-delivery documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		hits, err := guard.Client().SearchPOD(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAWB\tSTATUS\tDOCUMENT")
		for _, h := range hits {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", h.ShipmentID, h.AWBNumber, h.CurrentStatus, h.PODDocumentURL)
		}
		return w.Flush()
	},
}

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "List shipper accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		customers, err := guard.Client().Customers(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCITY\tEMAIL")
		for _, c := range customers {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.City, c.Email)
		}
		return w.Flush()
	},
}

func init() {
	exceptionsCmd.Flags().IntVar(&flagExceptionsLimit, "limit", 0, "max feed entries (0 = backend default)")

	rootCmd.AddCommand(vendorsCmd, hubsCmd, exceptionsCmd, podCmd, customersCmd)
}
