package piiguard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/redactyl/piiguard/internal/vault"
)

func init() {
	var (
		in, key, token, fieldType string
	)
	vaultCmd := &cobra.Command{Use: "vault", Short: "Inspect sealed token vaults"}
	rootCmd.AddCommand(vaultCmd)

	open := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a sealed vault and print token mappings",
		Long:  "Open decrypts a vault written by 'anonymize --vault-out'. With --token it restores a single value; otherwise it prints every token and its original.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				key = os.Getenv("PIIGUARD_VAULT_KEY")
			}
			if key == "" {
				return errors.New("--key or PIIGUARD_VAULT_KEY is required")
			}
			blob, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			snap, err := vault.OpenSealed(key, blob)
			if err != nil {
				return err
			}
			v := vault.New(vault.WithKey(key))
			v.Import(snap)

			w := cmd.OutOrStdout()
			if token != "" {
				orig, ok := v.Detokenize(token, fieldType)
				if !ok {
					return fmt.Errorf("token %s not found for type %q", token, fieldType)
				}
				fmt.Fprintln(w, orig)
				return nil
			}
			flat := v.Flatten()
			if flagJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(flat)
			}
			tokens := lo.Keys(flat)
			sort.Strings(tokens)
			for _, t := range tokens {
				fmt.Fprintf(w, "%s\t%s\n", t, flat[t])
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d tokens\n", v.Len())
			return nil
		},
	}
	open.Flags().StringVar(&in, "in", "vault.bin", "sealed vault file")
	open.Flags().StringVar(&key, "key", "", "vault key (default $PIIGUARD_VAULT_KEY)")
	open.Flags().StringVar(&token, "token", "", "restore only this token")
	open.Flags().StringVar(&fieldType, "type", "", "field type of --token (e.g. email)")
	vaultCmd.AddCommand(open)
}
