package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	flagShipmentStatus string
	flagShipmentHub    string
	flagShipmentLimit  int
)

var shipmentsCmd = &cobra.Command{
	Use:   "shipments [id]",
	Short: "List shipments, or show one by ID",
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
				return fmt.Errorf("invalid shipment id %q", args[0])
			}
			detail, err := guard.Client().Shipment(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "AWB:       %s\n", detail.AWBNumber)
			fmt.Fprintf(out, "route:     %s -> %s (%s %s)\n", detail.OriginCity, detail.DestinationCity, detail.DestinationState, detail.DestinationPin)
			fmt.Fprintf(out, "status:    %s\n", detail.CurrentStatus)
			fmt.Fprintf(out, "hub:       %s %s\n", detail.CurrentHubCode, detail.CurrentHubName)
			fmt.Fprintf(out, "vendor:    %s\n", detail.VendorName)
			fmt.Fprintf(out, "consignee: %s\n", detail.ConsigneeName)
			fmt.Fprintf(out, "eta:       %s\n", detail.ExpectedDelivery)
			if detail.HasException != 0 {
				fmt.Fprintf(out, "exception: %s — %s\n", detail.ExceptionType, detail.ExceptionNotes)
			}
			return nil
		}

		rows, err := guard.Client().Shipments(cmd.Context(), flagShipmentStatus, flagShipmentHub, flagShipmentLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAWB\tROUTE\tSTATUS\tHUB\tETA")
		for _, row := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s->%s\t%s\t%s\t%s\n",
				row.ShipmentID, row.AWBNumber, row.Origin, row.Destination, row.Status, row.CurrentHubCode, row.ETA)
		}
		return w.Flush()
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the overview counts and booking trend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		out := cmd.OutOrStdout()
		s, err := guard.Client().ShipmentSummary(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "booked %d  picked-up %d  in-transit %d  out-for-delivery %d\n",
			s.Booked, s.PickedUp, s.InTransit, s.OutForDelivery)
		fmt.Fprintf(out, "delayed %d  exceptions %d  on-time %.1f%%\n",
			s.DelayedShipments, s.Exceptions, s.OnTimeRate)

		trend, err := guard.Client().ShipmentTrend(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range trend {
			fmt.Fprintf(out, "%s  %d\n", p.Day, p.Value)
		}
		return nil
	},
}

var delayedCmd = &cobra.Command{
	Use:   "delayed",
	Short: "List shipments past their expected delivery date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		guard, err := requireSession(cmd)
		if err != nil {
			return err
		}
		defer guard.Close()

		rows, err := guard.Client().DelayedShipments(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAWB\tROUTE\tSTATUS\tETA")
		for _, row := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s->%s\t%s\t%s\n",
				row.ShipmentID, row.AWBNumber, row.OriginCity, row.DestinationCity, row.CurrentStatus, row.ETA)
		}
		return w.Flush()
	},
}

func init() {
	shipmentsCmd.Flags().StringVar(&flagShipmentStatus, "status", "", "filter by status")
	shipmentsCmd.Flags().StringVar(&flagShipmentHub, "hub", "", "filter by current hub code")
	shipmentsCmd.Flags().IntVar(&flagShipmentLimit, "limit", 0, "max rows (0 = backend default)")

	rootCmd.AddCommand(shipmentsCmd, summaryCmd, delayedCmd)
}
