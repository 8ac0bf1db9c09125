package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bokslut-dev/bokslut/internal/charset"
	"github.com/bokslut-dev/bokslut/internal/mapping"
	"github.com/bokslut-dev/bokslut/internal/report"
	"github.com/bokslut-dev/bokslut/internal/resolve"
	"github.com/bokslut-dev/bokslut/internal/sie"
)

func newReportCommand(logger func() zerolog.Logger) *cobra.Command {
	var (
		priorPath   string
		mappingsDir string
		encoding    string
		overrides   []string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "report <file.sie>",
		Short: "Classify ledger movements and resolve statement line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()

			current, err := readLedger(args[0], encoding)
			if err != nil {
				return err
			}
			warnFieldErrors(log, args[0], current)

			var prior *sie.Document
			if priorPath != "" {
				prior, err = readLedger(priorPath, encoding)
				if err != nil {
					return err
				}
				warnFieldErrors(log, priorPath, prior)
			}

			tables, err := loadTables(mappingsDir)
			if err != nil {
				return err
			}

			set, err := parseOverrides(overrides)
			if err != nil {
				return err
			}

			res, err := report.Run(report.Input{
				Current:   current,
				Prior:     prior,
				Tables:    tables,
				Overrides: set,
			}, log)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeText(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&priorPath, "prior", "", "prior fiscal year's ledger export")
	cmd.Flags().StringVar(&mappingsDir, "mappings", "", "directory of mapping table YAML files (default: built-in tables)")
	cmd.Flags().StringVar(&encoding, "encoding", charset.Default,
		"ledger file encoding ("+strings.Join(charset.Names(), ", ")+")")
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a variable, e.g. --set net_sales=120000")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of text")

	return cmd
}

func readLedger(path, encoding string) (*sie.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r, err := charset.NewReader(f, encoding)
	if err != nil {
		return nil, err
	}
	doc, err := sie.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

func warnFieldErrors(log zerolog.Logger, path string, doc *sie.Document) {
	for _, e := range doc.Errors {
		log.Warn().Str("file", path).Int("line", e.Line).
			Str("field", e.Field).Str("value", e.Value).
			Msg("unparseable numeric field, line ignored")
	}
}

func loadTables(dir string) ([]*resolve.Table, error) {
	if dir == "" {
		return mapping.Defaults(), nil
	}
	return mapping.LoadDir(dir)
}

// parseOverrides parses repeated "name=value" flags.
func parseOverrides(pairs []string) (map[string]decimal.Decimal, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]decimal.Decimal, len(pairs))
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid override %q, want name=value", p)
		}
		v, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid override value in %q: %w", p, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func writeText(w io.Writer, res *report.Result) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	statement := ""
	for _, row := range res.Variables.Rows() {
		if row.Hidden {
			continue
		}
		if row.Statement != statement {
			if statement != "" {
				fmt.Fprintln(tw)
			}
			statement = row.Statement
			fmt.Fprintf(tw, "%s\n", strings.ToUpper(statement))
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", row.Title, row.Amount.Current.StringFixed(2), row.Amount.Prior.StringFixed(2))
	}
	for _, cr := range res.Categories {
		if cr.Current.Buckets.IsZero() && cr.Current.Cost.Opening.IsZero() {
			continue
		}
		fmt.Fprintf(tw, "\n%s\n", cr.Config.Title)
		fmt.Fprintf(tw, "  Ingående anskaffningsvärden\t%s\t%s\n",
			cr.Current.Cost.Opening.StringFixed(2), cr.Prior.Cost.Opening.StringFixed(2))
		fmt.Fprintf(tw, "  Utgående anskaffningsvärden\t%s\t%s\n",
			cr.Current.Cost.Closing.StringFixed(2), cr.Prior.Cost.Closing.StringFixed(2))
		fmt.Fprintf(tw, "  Redovisat värde\t%s\t%s\n",
			cr.Current.CarryingValue().StringFixed(2), cr.Prior.CarryingValue().StringFixed(2))
	}
	tw.Flush()
}

func writeJSON(w io.Writer, res *report.Result) error {
	type amount struct {
		Current decimal.Decimal `json:"current"`
		Prior   decimal.Decimal `json:"prior"`
	}
	type variable struct {
		Statement string `json:"statement"`
		Name      string `json:"name"`
		Title     string `json:"title,omitempty"`
		amount
	}
	type categorySummary struct {
		Key           string `json:"key"`
		Title         string `json:"title"`
		OpeningCost   amount `json:"opening_cost"`
		ClosingCost   amount `json:"closing_cost"`
		CarryingValue amount `json:"carrying_value"`
	}
	out := struct {
		Variables  []variable        `json:"variables"`
		Categories []categorySummary `json:"categories"`
	}{}
	for _, row := range res.Variables.Rows() {
		out.Variables = append(out.Variables, variable{
			Statement: row.Statement,
			Name:      row.Name,
			Title:     row.Title,
			amount:    amount{Current: row.Amount.Current, Prior: row.Amount.Prior},
		})
	}
	for _, cr := range res.Categories {
		out.Categories = append(out.Categories, categorySummary{
			Key:   cr.Config.Key,
			Title: cr.Config.Title,
			OpeningCost: amount{
				Current: cr.Current.Cost.Opening, Prior: cr.Prior.Cost.Opening},
			ClosingCost: amount{
				Current: cr.Current.Cost.Closing, Prior: cr.Prior.Cost.Closing},
			CarryingValue: amount{
				Current: cr.Current.CarryingValue(), Prior: cr.Prior.CarryingValue()},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
