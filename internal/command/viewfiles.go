package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"babble-bot/pkg/cmd"

	embed "github.com/clinet/discordgo-embed"
)

type ViewFilesCommand struct{}

func (c *ViewFilesCommand) Name() string         { return "viewfiles" }
func (c *ViewFilesCommand) Description() string  { return "Show data file sizes and the bot's source length" }
func (c *ViewFilesCommand) Match(in string) bool { return cmd.Exact("!viewfiles").Match(in) }
func (c *ViewFilesCommand) FailureReply() string {
	return "Sorry, I encountered an error while retrieving file information."
}

func (c *ViewFilesCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mctx, err := messageContext(inv)
	if err != nil {
		return err
	}
	paths := mctx.Store.Paths()

	learned, err := os.Stat(paths.LearnedWords)
	if err != nil {
		return err
	}
	history, err := os.Stat(paths.History)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(mctx.Settings.SourcePath)
	if err != nil {
		return err
	}
	sourceName := filepath.Base(mctx.Settings.SourcePath)

	e := embed.NewEmbed().
		SetColor(EmbedColor).
		SetTitle("File Sizes & Script Info").
		SetDescription("Here are the sizes of the bot files and the number of lines in the source:").
		AddField(filepath.Base(paths.LearnedWords), FormatKB(learned.Size())).
		AddField(filepath.Base(paths.History), FormatKB(history.Size())).
		AddField(fmt.Sprintf("Bot Source (%s)", sourceName), FormatKB(int64(len(source)))).
		AddField("Bot Source Lines", fmt.Sprintf("%d lines of code", CountLines(source)))

	return mctx.Gateway.ReplyEmbed(ctx, mctx.Message, e.MessageEmbed)
}

// FormatKB renders a byte count in kibibytes with two decimals.
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}

// CountLines counts newline-separated lines; a trailing newline starts an empty last line.
func CountLines(data []byte) int {
	return bytes.Count(data, []byte("\n")) + 1
}
