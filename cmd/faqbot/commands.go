package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yanqian/internship-faqbot/internal/bootstrap"
	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "faqbot",
		Short:         "Internship FAQ chatbot",
		Long:          "Answers internship questions by matching them against a fixed FAQ. Without a subcommand it starts an interactive chat on stdin/stdout.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return app.Chat(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
	root.AddCommand(newAskCommand(), newListCommand(), newTrendingCommand(), newServeCommand())
	return root
}

func newAskCommand() *cobra.Command {
	var (
		mode    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return runWithApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				if mode == "" && !verbose {
					if reply := app.Reply(ctx, question); !reply.Stop {
						fmt.Fprintln(out, "Bot: "+reply.Text)
					}
					return nil
				}
				if mode != "" && !faq.IsValidMode(faq.SearchMode(mode)) {
					return fmt.Errorf("unknown mode %q", mode)
				}
				resp, err := app.Ask(ctx, question, faq.SearchMode(mode))
				if err != nil {
					fmt.Fprintln(out, "Bot: "+app.FallbackReply())
					return nil
				}
				fmt.Fprintln(out, "Bot: "+resp.Answer)
				if verbose {
					printMatch(cmd.ErrOrStderr(), resp)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "search mode: exact, similarity, semantic_hash, keyword or hybrid")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the matched question, score and mode")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the loaded FAQ entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, func(_ context.Context, app *bootstrap.App) error {
				table := newTable(cmd.OutOrStdout(), []string{"#", "Question"})
				for i, entry := range app.Entries() {
					table.Append([]string{strconv.Itoa(i + 1), entry.Question})
				}
				table.Render()
				return nil
			})
		},
	}
}

func newTrendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show the most frequently matched questions",
		Long: "Show the most frequently matched questions. Counts live in the configured store; " +
			"the in-memory default only sees questions asked in this process, so enable faq.redis.enabled " +
			"(or FAQ_REDIS_ENABLED) to track them across invocations and the HTTP server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.Trending(ctx)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "no questions recorded yet; counts persist across runs only with faq.redis.enabled")
				}
				table := newTable(cmd.OutOrStdout(), []string{"Question", "Count"})
				for _, item := range items {
					table.Append([]string{item.Query, strconv.FormatInt(item.Count, 10)})
				}
				table.Render()
				return nil
			})
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the FAQ over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				return app.Serve(ctx)
			})
		},
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func printMatch(w io.Writer, resp faq.Response) {
	fmt.Fprintf(w, "matched: %q\nentry: %d\nscore: %.4f\nmode: %s\n", resp.MatchedQuestion, resp.EntryID, resp.Score, resp.Mode)
}
