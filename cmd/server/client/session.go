package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lumina-api/internal/handlers/lumina/v1alpha1"
)

var (
	intention string
	source    string
	confirm   bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new game session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.CreateSession(ctx)
			if err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var startCmd = &cobra.Command{
	Use:     "start [session-id]",
	Short:   "Start a session with an intention",
	Example: `  start session_1234 --intention "open my heart"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.StartSession(ctx, args[0], intention)
			if err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var rollCmd = &cobra.Command{
	Use:   "roll [session-id]",
	Short: "Roll the die and move",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.RollDice(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to roll dice: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var chooseSourceCmd = &cobra.Command{
	Use:   "choose-source [session-id]",
	Short: "Choose where the next card is drawn from (ENVELOPE or DECK)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.ChooseSource(ctx, args[0], strings.ToUpper(source))
			if err != nil {
				return fmt.Errorf("failed to choose source: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var acknowledgeCmd = &cobra.Command{
	Use:   "acknowledge [session-id]",
	Short: "Accept the revealed card and apply its effects",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.AcknowledgeCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to acknowledge card: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var clearPainCmd = &cobra.Command{
	Use:   "clear-pain [session-id]",
	Short: "Spend one awareness token to clear one tear",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.ClearPain(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to clear pain: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [session-id]",
	Short: "Discard all progress and return the session to setup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed := confirm
		if !confirmed {
			confirmed = askConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Reset the journey? All progress will be lost.")
		}

		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.ResetSession(ctx, args[0], confirmed)
			if err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [session-id]",
	Short: "Show the session state and log",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			out, err := c.GetSession(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}
			return printJSON(stdout, out)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
			if err := c.DeleteSession(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
			_, err := fmt.Fprintf(stdout, "Deleted session %s\n", args[0])
			return err
		})
	},
}

func init() {
	startCmd.Flags().StringVar(&intention, "intention", "", "what the player wants to transform")
	_ = startCmd.MarkFlagRequired("intention")

	chooseSourceCmd.Flags().StringVar(&source, "source", "", "card source: ENVELOPE or DECK")
	_ = chooseSourceCmd.MarkFlagRequired("source")

	resetCmd.Flags().BoolVar(&confirm, "confirm", false, "skip the confirmation prompt")
}

// askConfirmation prompts on out and reads a yes/no answer from in. Anything
// but y or yes declines.
func askConfirmation(in io.Reader, out io.Writer, prompt string) bool {
	if in == nil {
		in = os.Stdin
	}
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
