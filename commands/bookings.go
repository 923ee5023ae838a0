package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goginie/models"
	"goginie/services"
)

var BookingsCmd = &cobra.Command{
	Use:     "bookings",
	Aliases: []string{"b"},
	Short:   "Inspect and manage saved bookings",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")
		status, _ := cmd.Flags().GetString("status")
		query, _ := cmd.Flags().GetString("query")
		format, _ := cmd.Flags().GetString("output")

		filter := models.BookingFilter{
			Type:   models.BookingType(typ),
			Status: models.BookingStatus(status),
			Query:  query,
		}
		if filter.Type != "" && !filter.Type.Valid() {
			return fmt.Errorf("unknown booking type %q", typ)
		}
		if filter.Status != "" && !filter.Status.Valid() {
			return fmt.Errorf("unknown booking status %q", status)
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		list, err := store.List(filter)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, list, bookingsTable(list))
	},
}

var bookingsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show booking totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		st, err := store.Stats()
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, st, statsTable(st))
	},
}

var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Mark a booking cancelled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Cancel(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🚫 Booking %s cancelled\n", args[0])
		return nil
	},
}

var bookingsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a booking permanently",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Booking %s deleted\n", args[0])
		return nil
	},
}

var bookingsReceiptCmd = &cobra.Command{
	Use:   "receipt <id>",
	Short: "Write a PDF receipt for a booking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		b, err := store.Get(args[0])
		if err != nil {
			return err
		}
		data, err := services.GenerateReceiptPDF(*b)
		if err != nil {
			return err
		}
		if out == "" {
			out = "goginie-receipt-" + b.ConfirmationCode + ".pdf"
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Receipt written to %s\n", out)
		return nil
	},
}

func init() {
	bookingsListCmd.Flags().String("type", "", "filter by type (flight, train, hotel, cab, restaurant)")
	bookingsListCmd.Flags().String("status", "", "filter by status (pending, confirmed, cancelled)")
	bookingsListCmd.Flags().StringP("query", "q", "", "search title, confirmation code and details")
	bookingsListCmd.Flags().StringP("output", "o", outputTable, "output format: table, json or yaml")
	bookingsStatsCmd.Flags().StringP("output", "o", outputTable, "output format: table, json or yaml")
	bookingsReceiptCmd.Flags().String("out", "", "output file (default goginie-receipt-<code>.pdf)")

	BookingsCmd.AddCommand(bookingsListCmd, bookingsStatsCmd, bookingsCancelCmd, bookingsDeleteCmd, bookingsReceiptCmd)
}
