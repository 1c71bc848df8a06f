package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"classboard/internal/engine"
	"classboard/internal/render"
	"classboard/internal/storage"
	"classboard/internal/ui"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage board tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(),
		newTaskListCmd(),
		newTaskMoveCmd(),
		newTaskRmCmd(),
	)
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var assignee, due, priority, status, desc, attachments string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the board",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if assignee == "" {
				return errors.New("assignee is required")
			}
			if due == "" {
				return errors.New("due date is required")
			}
			if !engine.Status(status).IsValid() {
				return fmt.Errorf("invalid status %q (todo|inprogress|done|cancelled)", status)
			}
			if !engine.Priority(priority).IsValid() {
				return fmt.Errorf("invalid priority %q (low|medium|high)", priority)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc.StopEditing()
			t, err := svc.UpsertTask(ctx, storage.Task{
				Title:       args[0],
				Description: desc,
				Assignee:    assignee,
				DueDate:     due,
				Priority:    priority,
				Status:      status,
				Attachments: attachments,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", ui.Good.Render(ui.IconPlus+" Added"), t.Title, ui.Muted.Render(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Assignee (required)")
	cmd.Flags().StringVarP(&due, "due", "u", "", "Due date, YYYY-MM-DD (required)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(engine.DefaultPriority), "Priority (low|medium|high)")
	cmd.Flags().StringVarP(&status, "status", "s", string(engine.DefaultStatus), "Status (todo|inprogress|done|cancelled)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	cmd.Flags().StringVar(&attachments, "attachments", "", "Attachment link")

	return cmd
}

func newTaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the kanban board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBoard, "任务看板"))
			fmt.Fprint(cmd.OutOrStdout(), render.Kanban(svc.Tasks(), render.KanbanOptions{}))
			return nil
		},
	}
	return cmd
}

func newTaskMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another lane",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and status are required")
			}
			if !engine.Status(args[1]).IsValid() {
				return fmt.Errorf("invalid status %q (todo|inprogress|done|cancelled)", args[1])
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

			if err := svc.MoveTaskStatus(ctx, args[0], engine.Status(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", ui.Good.Render(ui.IconDone+" Moved"), args[0], ui.StatusText(args[1]))
			return nil
		},
	}
	return cmd
}

func newTaskRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
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

			if !yes && !confirmOnStdin(cmd, "确定要删除此任务吗？") {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
				return nil
			}
			removed, err := svc.DeleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No such task."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconTrash+" Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirmOnStdin is the CLI stand-in for the board's delete dialog.
func confirmOnStdin(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
