package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"classboard/internal/engine"
	"classboard/internal/render"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

func newPointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Manage the point ledger",
	}
	cmd.AddCommand(
		newPointsAddCmd(),
		newPointsListCmd(),
		newPointsRmCmd(),
	)
	return cmd
}

func newPointsAddCmd() *cobra.Command {
	var date, name, event, change, reason, confirmedBy string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a point change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if name == "" || event == "" || reason == "" || confirmedBy == "" {
				return errors.New("name, event, reason and confirmed-by are required")
			}
			delta, err := engine.ParseChange(change)
			if err != nil {
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			svc.StopEditing()
			p, err := svc.UpsertPoint(ctx, storage.PointEntry{
				Date:        date,
				Name:        name,
				Event:       event,
				Change:      delta,
				Reason:      reason,
				ConfirmedBy: confirmedBy,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s → total %d\n",
				ui.Good.Render(ui.IconStar+" Recorded"), p.Name, ui.ChangeText(p.Change), svc.TotalPoints())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Member name (required)")
	cmd.Flags().StringVarP(&event, "event", "e", "", "Event (required)")
	cmd.Flags().StringVarP(&change, "change", "c", "", "Signed change, e.g. 4, +4, -2 (required)")
	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Reason (required)")
	cmd.Flags().StringVar(&confirmedBy, "confirmed-by", "", "Confirming committee member (required)")

	return cmd
}

func newPointsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the ledger and total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconStar, "积分台账"))
			fmt.Fprint(cmd.OutOrStdout(), render.PointsTable(svc.Points(), ""))
			return nil
		},
	}
	return cmd
}

func newPointsRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a ledger entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !yes && !confirmOnStdin(cmd, "确定要删除此条积分记录吗？") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
				return nil
			}
			removed, err := svc.DeletePoint(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such ledger entry."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconTrash+" Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
