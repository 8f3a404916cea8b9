package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func newBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books [id]",
		Short: "List the catalog or show one book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				b, err := rt.sf.Catalog.GetBook(ctx, id)
				if err != nil {
					return err
				}
				printBook(cmd.OutOrStdout(), *b)
				return nil
			}

			books, err := rt.sf.Catalog.ListBooks(ctx)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		},
	}
}

func newBillsCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "bills [id]",
		Short: "List your bills or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := open(ctx, a)
			if err != nil {
				return err
			}
			defer rt.close()

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				bill, err := rt.sf.Billing.GetBill(ctx, id)
				if err != nil {
					return err
				}
				printBill(cmd.OutOrStdout(), *bill)
				return nil
			}

			var bills []domain.Bill
			if all {
				bills, err = rt.sf.Billing.AllBills(ctx)
			} else {
				bills, err = rt.sf.Billing.MyBills(ctx)
			}
			if err != nil {
				return err
			}
			printBills(cmd.OutOrStdout(), bills)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "every user's bills (admin)")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printBooks(w io.Writer, books []domain.Book) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPRICE\tRENTAL\tSTOCK")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", b.ID, b.Title, b.Author,
			domain.FormatAmount(b.Price), domain.FormatAmount(b.RentalPrice), b.Stock)
	}
	_ = tw.Flush()
}

func printBook(w io.Writer, b domain.Book) {
	fmt.Fprintf(w, "#%d %s\n", b.ID, b.Title)
	fmt.Fprintf(w, "  by %s", b.Author)
	if b.PublishYear > 0 {
		fmt.Fprintf(w, " (%d)", b.PublishYear)
	}
	fmt.Fprintln(w)
	if b.Genre != "" {
		fmt.Fprintf(w, "  genre: %s\n", b.Genre)
	}
	fmt.Fprintf(w, "  price %s, rental %s, %d in stock\n",
		domain.FormatAmount(b.Price), domain.FormatAmount(b.RentalPrice), b.Stock)
	if b.Description != "" {
		fmt.Fprintf(w, "  %s\n", b.Description)
	}
}

func printBills(w io.Writer, bills []domain.Bill) {
	if len(bills) == 0 {
		fmt.Fprintln(w, "No bills")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tLINES\tTOTAL")
	for _, b := range bills {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", b.ID, b.Date.Format("2006-01-02"), b.Status,
			len(b.Transactions), domain.FormatAmount(b.Total))
	}
	_ = tw.Flush()
}

func printBill(w io.Writer, b domain.Bill) {
	fmt.Fprintf(w, "Bill #%d  %s  %s  total %s\n", b.ID, b.Date.Format("2006-01-02 15:04"), b.Status, domain.FormatAmount(b.Total))
	for _, tx := range b.Transactions {
		switch tx.Type {
		case domain.TransactionPurchase:
			for _, it := range tx.Items {
				fmt.Fprintf(w, "  buy   %dx %s\n", it.Quantity, it.Book.Title)
			}
		case domain.TransactionLoan:
			title := ""
			if tx.Book != nil {
				title = tx.Book.Title
			}
			due := ""
			if tx.Deadline != nil {
				due = " due " + tx.Deadline.Format("2006-01-02")
			}
			fmt.Fprintf(w, "  loan  %s%s\n", title, due)
		}
	}
}
