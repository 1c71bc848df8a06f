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

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage the work log",
	}
	cmd.AddCommand(
		newLogAddCmd(),
		newLogListCmd(),
		newLogRmCmd(),
	)
	return cmd
}

func newLogAddCmd() *cobra.Command {
	var date, assignee, category, desc, link, status, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a work-log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if assignee == "" || category == "" || desc == "" {
				return errors.New("assignee, category and desc are required")
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			svc.StopEditing()
			l, err := svc.UpsertLog(ctx, storage.LogEntry{
				Date:        date,
				Assignee:    assignee,
				Category:    category,
				Description: desc,
				Link:        link,
				Status:      status,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", ui.Good.Render(ui.IconLog+" Logged"), l.Description, ui.Muted.Render(l.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (required)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description (required)")
	cmd.Flags().StringVar(&link, "link", "", "Reference link")
	cmd.Flags().StringVarP(&status, "status", "s", engine.DefaultLogStatus, "Entry status")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newLogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the work log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconLog, "工作日志"))
			fmt.Fprint(cmd.OutOrStdout(), render.LogTable(svc.Logs(), ""))
			return nil
		},
	}
	return cmd
}

func newLogRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a work-log entry",
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

			if !yes && !confirmOnStdin(cmd, "确定要删除此条日志吗？") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
				return nil
			}
			removed, err := svc.DeleteLog(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such log entry."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconTrash+" Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
