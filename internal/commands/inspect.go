package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bokslut-dev/bokslut/internal/category"
	"github.com/bokslut-dev/bokslut/internal/charset"
	"github.com/bokslut-dev/bokslut/internal/sie"
)

func newInspectCommand(logger func() zerolog.Logger) *cobra.Command {
	var (
		encoding     string
		showVouchers bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.sie>",
		Short: "Dump a parsed ledger export and its per-category classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()

			doc, err := readLedger(args[0], encoding)
			if err != nil {
				return err
			}
			warnFieldErrors(log, args[0], doc)

			writeInspect(cmd.OutOrStdout(), doc, showVouchers, log)
			return nil
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", charset.Default, "ledger file encoding")
	cmd.Flags().BoolVar(&showVouchers, "vouchers", false, "list every voucher and its postings")

	return cmd
}

func writeInspect(w io.Writer, doc *sie.Document, showVouchers bool, log zerolog.Logger) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	if doc.Company.Name != "" || doc.Company.OrgNr != "" {
		fmt.Fprintf(tw, "Company\t%s\t%s\n\n", doc.Company.Name, doc.Company.OrgNr)
	}

	chart := doc.Chart()
	fmt.Fprintf(tw, "ACCOUNTS (%d)\n", len(chart.All()))
	for _, a := range chart.All() {
		fmt.Fprintf(tw, "  %d\t%s\tIB %s\tUB %s\n", a.ID, a.Name,
			doc.Balances.Opening(0, a.ID).StringFixed(2),
			doc.Balances.Closing(0, a.ID).StringFixed(2))
	}

	fmt.Fprintf(tw, "\nVOUCHERS (%d)\n", len(doc.Vouchers))
	if showVouchers {
		for _, v := range doc.Vouchers {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", v.Key(), v.Date.Format("2006-01-02"), v.Title)
			for _, p := range v.Postings {
				fmt.Fprintf(tw, "    %d\t%s\n", p.Account, p.Amount.StringFixed(2))
			}
		}
	}

	fmt.Fprintln(tw, "\nCATEGORY BUCKETS")
	for _, cfg := range category.DefaultConfigs() {
		b := category.Classify(cfg, doc.Vouchers, log)
		if b.IsZero() {
			continue
		}
		fmt.Fprintf(tw, "  %s\n", cfg.Title)
		printBucket(tw, "purchase", b.Purchase.StringFixed(2))
		printBucket(tw, "merger inflow", b.MergerInflow.StringFixed(2))
		printBucket(tw, "disposal", b.Disposal.StringFixed(2))
		printBucket(tw, "reclassification", b.Reclassification.StringFixed(2))
		printBucket(tw, "depreciation", b.Depreciation.StringFixed(2))
		printBucket(tw, "impairment", b.Impairment.StringFixed(2))
		printBucket(tw, "impairment reversal", b.ImpairmentReversal.StringFixed(2))
		printBucket(tw, "result share", b.ResultShare.StringFixed(2))
	}
	tw.Flush()
}

func printBucket(w io.Writer, name, amount string) {
	if amount == "0.00" {
		return
	}
	fmt.Fprintf(w, "    %s\t%s\n", name, amount)
}
