package command

import (
	"context"

	"babble-bot/internal/version"
	"babble-bot/pkg/cmd"

	embed "github.com/clinet/discordgo-embed"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string         { return "help" }
func (c *HelpCommand) Description() string  { return "List what the bot does" }
func (c *HelpCommand) Match(in string) bool { return cmd.Exact("!help").Match(in) }

var helpFields = []struct{ name, value string }{
	{"Remember Messages", "Everything you say is written down, one line at a time."},
	{"Echoes", "Mention me and I'll hand one of your own lines back to you."},
	{"Random Sentences", "Now and then I stitch a few words together and say them out loud."},
	{"!stats [@user]", "Status plus the most and least used word of you or whoever you mention."},
	{"!viewfiles", "How big my memory files are and how long my source is."},
	{"!randomword german", "A random German word with its translation."},
	{"!help", "This list."},
}

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mctx, err := messageContext(inv)
	if err != nil {
		return err
	}

	e := embed.NewEmbed().
		SetColor(EmbedColor).
		SetTitle(version.AppName + " Help").
		SetDescription(version.AppDescription + " Here's what I do:").
		SetFooter(version.AppName + " " + version.BuildInfo())
	for _, f := range helpFields {
		e.AddField(f.name, f.value)
	}

	return mctx.Gateway.ReplyEmbed(ctx, mctx.Message, e.MessageEmbed)
}
