package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
	"github.com/rogerio-castellano/inventory-keeper/internal/shell"
	"github.com/rogerio-castellano/inventory-keeper/pkg/ptr"
)

func (a *app) listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products ordered by code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := a.store.List()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(products)
			}
			fmt.Fprintln(cmd.OutOrStdout(), shell.RenderProducts(products))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print products as JSON")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.store.Get(args[0])
			if err != nil {
				return fmt.Errorf("get %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), shell.RenderProduct(p))
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <code> <name> <price> <quantity>",
		Short: "Add a product",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := repo.ParsePrice(args[2])
			if err != nil {
				return fmt.Errorf("price %q: %w", args[2], err)
			}
			quantity, err := repo.ParseQuantity(args[3])
			if err != nil {
				return fmt.Errorf("quantity %q: %w", args[3], err)
			}
			if err := a.store.Add(args[0], args[1], price, quantity); err != nil {
				return fmt.Errorf("add %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product added.")
			return nil
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	var (
		name     string
		price    string
		quantity string
	)
	cmd := &cobra.Command{
		Use:   "update <code>",
		Short: "Change the name, price or quantity of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fields repo.ProductUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				fields.Name = ptr.New(name)
			}
			if flags.Changed("price") {
				v, err := repo.ParsePrice(price)
				if err != nil {
					return fmt.Errorf("price %q: %w", price, err)
				}
				fields.Price = &v
			}
			if flags.Changed("quantity") {
				v, err := repo.ParseQuantity(quantity)
				if err != nil {
					return fmt.Errorf("quantity %q: %w", quantity, err)
				}
				fields.Quantity = &v
			}
			if err := a.store.Update(args[0], fields); err != nil {
				return fmt.Errorf("update %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&price, "price", "", "new price")
	cmd.Flags().StringVar(&quantity, "quantity", "", "new quantity")
	return cmd
}

func (a *app) removeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to remove without --yes")
			}
			if err := a.store.Delete(args[0]); err != nil {
				return fmt.Errorf("remove %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product removed.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the removal")
	return cmd
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats := repo.ComputeStats(a.store, a.cfg.LowStockThreshold)
			fmt.Fprint(cmd.OutOrStdout(), shell.RenderStats(stats, a.cfg.LowStockThreshold))
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import products from a CSV file with code,name,price,quantity columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			result, err := repo.ImportCSV(f, a.store, repo.ParseImportMode(mode))
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d product(s).\n", result.Imported)
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %v\n", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(repo.ImportModeSkip), "what to do with existing codes: skip or update")
	return cmd
}
