package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"clinic-admin/internal/domain"
	"clinic-admin/internal/restapi"
)

func newListCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clinic resources",
	}

	cmd.AddCommand(newListPatientsCmd(state))
	cmd.AddCommand(newListWaitingCmd(state))
	cmd.AddCommand(newListMedicinesCmd(state))
	cmd.AddCommand(newListInvoicesCmd(state))
	return cmd
}

func newListPatientsCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "patients",
		Short: "List registered patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			items, err := restapi.NewResource[domain.Patient](state.client(), "/api/patients/").List(ctx)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, items)
			}
			rows := make([][]string, 0, len(items))
			for _, p := range items {
				year := ""
				if p.BirthYear > 0 {
					year = strconv.Itoa(p.BirthYear)
				}
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), p.FullName, p.Gender, year, p.Phone, p.Address,
				})
			}
			return printTable(os.Stdout, []string{"ID", "NAME", "GENDER", "BORN", "PHONE", "ADDRESS"}, rows)
		},
	}
}

func newListWaitingCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "waiting",
		Short: "List today's waiting queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			items, err := restapi.NewResource[domain.WaitingEntry](state.client(), "/api/waiting-list/").List(ctx)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, items)
			}
			rows := make([][]string, 0, len(items))
			for _, e := range items {
				rows = append(rows, []string{
					strconv.Itoa(e.Number), e.Patient.FullName, e.Patient.Phone,
					e.RegisteredAt.Format("15:04"), e.Status,
				})
			}
			return printTable(os.Stdout, []string{"NO", "PATIENT", "PHONE", "TIME", "STATUS"}, rows)
		},
	}
}

func newListMedicinesCmd(state *cliState) *cobra.Command {
	var lowStock int

	cmd := &cobra.Command{
		Use:   "medicines",
		Short: "List medicines with price and stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			items, err := restapi.NewResource[domain.Medicine](state.client(), "/api/thuoc/").List(ctx)
			if err != nil {
				return err
			}
			if lowStock > 0 {
				filtered := items[:0]
				for _, m := range items {
					if m.Stock <= lowStock {
						filtered = append(filtered, m)
					}
				}
				items = filtered
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, items)
			}
			rows := make([][]string, 0, len(items))
			for _, m := range items {
				rows = append(rows, []string{
					strconv.FormatInt(m.ID, 10), m.Name, m.Unit.Name,
					strconv.FormatFloat(m.Price, 'f', 0, 64), strconv.Itoa(m.Stock),
				})
			}
			return printTable(os.Stdout, []string{"ID", "NAME", "UNIT", "PRICE", "STOCK"}, rows)
		},
	}

	cmd.Flags().IntVar(&lowStock, "low-stock", 0, "Only show medicines at or below this stock level")
	return cmd
}

func newListInvoicesCmd(state *cliState) *cobra.Command {
	var unpaid bool

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := domain.WithToken(cmd.Context(), state.token)
			items, err := restapi.NewResource[domain.Invoice](state.client(), "/api/invoices/").List(ctx)
			if err != nil {
				return err
			}
			if unpaid {
				filtered := items[:0]
				for _, inv := range items {
					if !inv.Paid {
						filtered = append(filtered, inv)
					}
				}
				items = filtered
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, items)
			}
			rows := make([][]string, 0, len(items))
			for _, inv := range items {
				paid := "no"
				if inv.Paid {
					paid = "yes"
				}
				rows = append(rows, []string{
					strconv.FormatInt(inv.ID, 10), inv.Patient.FullName,
					inv.CreatedAt.Format("2006-01-02"),
					fmt.Sprintf("%.0f", inv.Total), paid,
				})
			}
			return printTable(os.Stdout, []string{"ID", "PATIENT", "DATE", "TOTAL", "PAID"}, rows)
		},
	}

	cmd.Flags().BoolVar(&unpaid, "unpaid", false, "Only show unpaid invoices")
	return cmd
}
