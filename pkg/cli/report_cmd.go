package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"clinic-admin/internal/domain"
)

func newReportCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly reports",
	}

	cmd.AddCommand(newReportRevenueCmd(state))
	cmd.AddCommand(newReportMedicationCmd(state))
	return cmd
}

func reportPeriodFlags(cmd *cobra.Command, month, year *int) {
	now := time.Now()
	cmd.Flags().IntVar(month, "month", int(now.Month()), "Report month (1-12)")
	cmd.Flags().IntVar(year, "year", now.Year(), "Report year")
}

func newReportRevenueCmd(state *cliState) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "Daily revenue for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			rows, err := state.client().Revenue(ctx, month, year)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, rows)
			}

			var total float64
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{
					row.Date,
					strconv.Itoa(row.PatientCount),
					fmt.Sprintf("%.0f", row.Revenue),
					fmt.Sprintf("%.1f%%", row.Percentage),
				})
				total += row.Revenue
			}
			if err := printTable(os.Stdout, []string{"DATE", "PATIENTS", "REVENUE", "SHARE"}, table); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "Total: %.0f\n", total)
			return nil
		},
	}

	reportPeriodFlags(cmd, &month, &year)
	return cmd
}

func newReportMedicationCmd(state *cliState) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "medication",
		Short: "Medication usage totals for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			rows, err := state.client().MedicationUsage(ctx, month, year)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, rows)
			}

			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				table = append(table, []string{
					row.MedicineName,
					row.Unit,
					strconv.Itoa(row.TotalQuantityUsed),
					strconv.Itoa(row.PrescriptionCount),
				})
			}
			return printTable(os.Stdout, []string{"MEDICINE", "UNIT", "QUANTITY", "PRESCRIPTIONS"}, table)
		},
	}

	reportPeriodFlags(cmd, &month, &year)
	return cmd
}
