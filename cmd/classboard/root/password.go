package root

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"classboard/internal/ui"
)

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the settings password",
	}
	cmd.AddCommand(newPasswordSetCmd())
	return cmd
}

func newPasswordSetCmd() *cobra.Command {
	var newPass, confirm string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set or replace the settings gate password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if newPass == "" && confirm == "" {
				reader := bufio.NewReader(cmd.InOrStdin())
				newPass, err = promptLine(cmd, reader, "新密码: ")
				if err != nil {
					return err
				}
				confirm, err = promptLine(cmd, reader, "确认密码: ")
				if err != nil {
					return err
				}
			}

			if err := svc.SetPassword(ctx, newPass, confirm); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLock+" 密码设置成功！"))
			return nil
		},
	}

	cmd.Flags().StringVar(&newPass, "new", "", "New password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Confirm password")

	return cmd
}

func promptLine(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
