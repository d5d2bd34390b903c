package piiguard

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/fake"
)

var fakeKinds = map[string]func(g *fake.Generator, seed string) any{
	"name":        func(g *fake.Generator, s string) any { return g.FullName(s) },
	"email":       func(g *fake.Generator, s string) any { return g.Email(s) },
	"phone":       func(g *fake.Generator, s string) any { return g.Phone(s, "") },
	"ssn":         func(g *fake.Generator, s string) any { return g.SSN(s) },
	"address":     func(g *fake.Generator, s string) any { return g.Address(s) },
	"company":     func(g *fake.Generator, s string) any { return g.Company(s) },
	"date":        func(g *fake.Generator, s string) any { return g.Date(s, 0, 0) },
	"credit_card": func(g *fake.Generator, s string) any { return g.CreditCard(s) },
	"ip":          func(g *fake.Generator, s string) any { return g.IPAddress(s, 4) },
	"ipv6":        func(g *fake.Generator, s string) any { return g.IPAddress(s, 6) },
	"username":    func(g *fake.Generator, s string) any { return g.Username(s) },
}

func init() {
	var (
		count  int
		locale string
		seed   int64
	)
	kinds := lo.Keys(fakeKinds)
	sort.Strings(kinds)
	cmd := &cobra.Command{
		Use:       "fake KIND",
		Short:     "Generate fake values: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			gen, ok := fakeKinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q (want %s)", args[0], strings.Join(kinds, ", "))
			}
			opts := []fake.Option{fake.WithLocale(locale)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, fake.WithSeed(seed))
			}
			g := fake.New(opts...)
			values := make([]any, 0, count)
			for range count {
				values = append(values, gen(g, ""))
			}
			w := cmd.OutOrStdout()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(values)
			}
			for _, v := range values {
				if a, ok := v.(fake.Address); ok {
					v = a.Full
				}
				fmt.Fprintln(w, v)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of values")
	cmd.Flags().StringVar(&locale, "locale", "en_US", "locale: en_US, en_GB, en_CA, fr_CA, es_ES, fr_FR, de_DE, ja_JP")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for reproducible output")
	rootCmd.AddCommand(cmd)
}
