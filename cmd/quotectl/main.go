// README: quotectl prices shipments and storage stays offline and asks the advisor for copy.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"sharestuff/internal/ai"
	"sharestuff/internal/modules/pricing"
	"sharestuff/internal/obs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quotectl",
		Short:        "ShareStuff pricing and advisory tool",
		SilenceUsage: true,
	}
	root.AddCommand(newQuoteCmd(), newStorageCmd(), newAdviseCmd())
	return root
}

func newQuoteCmd() *cobra.Command {
	var (
		weight, rate, value float64
		urgency, insurance  string
		asJSON              bool
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a shipment on a courier trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := pricing.ParseUrgency(urgency)
			if err != nil {
				return err
			}
			tier, err := pricing.ParseInsuranceTier(insurance)
			if err != nil {
				return err
			}
			q := pricing.ComputeQuote(weight, rate, value, u, tier)
			if err := q.Validate(); err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			d := q.Display()
			return writeTable(cmd.OutOrStdout(), [][2]string{
				{"Base fee", d.BaseFee},
				{"Value surcharge", d.ValueSurcharge},
				{"Urgency premium", d.UrgencyPremium},
				{"Insurance premium", d.InsurancePremium},
				{"Total", d.Total},
				{"Platform commission", d.PlatformCommission},
				{"Traveler payout", d.TravelerPayout},
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&weight, "weight", 1, "shipment weight in kg")
	f.Float64Var(&rate, "rate", 0, "rate per kg (asking or negotiated)")
	f.Float64Var(&value, "value", 0, "declared value in USD")
	f.StringVar(&urgency, "urgency", string(pricing.UrgencyFlexible), "flexible | express | next-flight")
	f.StringVar(&insurance, "insurance", string(pricing.InsuranceBasic), "BASIC | PRO | PREMIUM")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newStorageCmd() *cobra.Command {
	var (
		bags, hours int
		price       float64
		tier        string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Price a luggage storage stay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := pricing.ParseStorageTier(tier)
			if err != nil {
				return err
			}
			q := pricing.ComputeStorageQuote(bags, hours, price, t)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}
			return writeTable(cmd.OutOrStdout(), [][2]string{
				{"Base price", pricing.FormatUSD(q.BasePrice)},
				{"Service fee", pricing.FormatUSD(q.ServiceFee)},
				{"Insurance", pricing.FormatUSD(q.InsuranceFee)},
				{"Total", pricing.FormatUSD(q.Total)},
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&bags, "bags", 1, "number of bags")
	f.IntVar(&hours, "hours", 1, "hours of storage")
	f.Float64Var(&price, "price", 0, "listing price per bag-hour")
	f.StringVar(&tier, "tier", string(pricing.StorageBasic), "Basic | Elite")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newAdviseCmd() *cobra.Command {
	var (
		item, listing, amenities string
		timeout                  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Ask the advisor for item safety tips or a listing summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (item == "") == (listing == "") {
				return fmt.Errorf("exactly one of --item or --listing is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			advisor, closeFn, err := advisorFromEnv(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			var text string
			if item != "" {
				text = advisor.ItemSafetyAdvice(ctx, item)
			} else {
				text = advisor.StorageSummary(ctx, listing, splitList(amenities))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&item, "item", "", "item the shipper wants to send")
	f.StringVar(&listing, "listing", "", "storage listing title")
	f.StringVar(&amenities, "amenities", "", "comma separated listing amenities")
	f.DurationVar(&timeout, "timeout", 15*time.Second, "overall timeout")
	return cmd
}

// advisorFromEnv uses Gemini when GEMINI_API_KEY is set and fallback copy otherwise.
var advisorFromEnv = func(ctx context.Context) (ai.Advisor, func() error, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return ai.FallbackAdvisor{}, func() error { return nil }, nil
	}
	gen, err := ai.NewGeminiGenerator(ctx, key, os.Getenv("SHARESTUFF_GEMINI_MODEL"))
	if err != nil {
		return nil, nil, err
	}
	log := obs.NewLoggerTo(os.Stderr, "console", "warn")
	return ai.NewTextAdvisor(gen, nil, log), gen.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, rows [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r[0], r[1])
	}
	return tw.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
