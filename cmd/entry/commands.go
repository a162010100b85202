package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/geocoder89/pravaah/internal/client"
	"github.com/geocoder89/pravaah/internal/entry"
	"github.com/geocoder89/pravaah/internal/form"
	"github.com/geocoder89/pravaah/internal/notifications"
	"github.com/geocoder89/pravaah/internal/schema"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// setupCommands initializes all commands and their relationships
func setupCommands() {
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Int("limit", 20, "records per page")
	listCmd.Flags().String("cursor", "", "cursor from a previous page")
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the collections the API accepts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := client.New(apiURL(), timeout()).Schema(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range cols {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %d fields\n", c.Icon, c.Name, len(c.Fields))
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:       "add <collection>",
	Short:     "Fill in and submit one record",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("add needs an interactive terminal; use bulk for scripted input")
		}

		ctrl, board, err := newController(cmd, args[0])
		if err != nil {
			return err
		}
		defer board.Dismiss()

		prompter, err := newReadlinePrompter()
		if err != nil {
			return err
		}
		defer prompter.Close()

		filled, err := entry.Fill(ctrl.Draft(), prompter)
		if err != nil {
			return err
		}
		ctrl.Update(func(form.Draft) form.Draft { return filled })

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return ctrl.Submit(ctx)
	},
}

var bulkCmd = &cobra.Command{
	Use:       "bulk <collection>",
	Short:     "Submit every built-in sample record of a collection",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, board, err := newController(cmd, args[0])
		if err != nil {
			return err
		}
		defer board.Dismiss()

		res, err := ctrl.BulkSubmit(cmd.Context(), ctrl.Samples())
		if err != nil {
			return err
		}
		if res.Succeeded == 0 && res.Failed > 0 {
			return fmt.Errorf("all %d samples failed", res.Failed)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:       "list <collection>",
	Short:     "Print stored records as JSON lines",
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cursor, _ := cmd.Flags().GetString("cursor")

		page, err := client.New(apiURL(), timeout()).List(cmd.Context(), args[0], cursor, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range page.Items {
			fmt.Fprintln(out, string(item))
		}

		summary := map[string]any{"count": page.Count, "total": page.Total}
		if page.NextCursor != "" {
			summary["nextCursor"] = page.NextCursor
		}
		b, _ := json.Marshal(summary)
		fmt.Fprintln(cmd.ErrOrStderr(), string(b))
		return nil
	},
}

func newController(cmd *cobra.Command, collection string) (*entry.Controller, *notifications.Board, error) {
	kind, err := schema.ParseKind(collection)
	if err != nil {
		return nil, nil, err
	}

	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	board := notifications.NewBoard(notifications.DefaultTTL, notifications.NewWriterNotifier(cmd.OutOrStdout()))

	ctrl, err := entry.NewController(client.New(apiURL(), timeout()), board, log, kind)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, board, nil
}

func kindNames() []string {
	kinds := schema.Kinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.String())
	}
	return out
}
