package command

import (
	"context"
	"fmt"
	"strings"

	"babble-bot/pkg/cmd"

	embed "github.com/clinet/discordgo-embed"
)

type StatsCommand struct{}

func (c *StatsCommand) Name() string         { return "stats" }
func (c *StatsCommand) Description() string  { return "Show a user's status and most/least used words" }
func (c *StatsCommand) Match(in string) bool { return cmd.Prefix("!stats").Match(in) }
func (c *StatsCommand) FailureReply() string { return "Sorry, there was an error fetching the stats." }

func (c *StatsCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mctx, err := messageContext(inv)
	if err != nil {
		return err
	}
	m := mctx.Message

	target := m.Author
	if mentioned, ok := m.FirstMention(); ok {
		target = mentioned
	}

	member, err := mctx.Gateway.Member(ctx, m.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("fetch member %s: %w", target.ID, err)
	}

	name := target.Username
	if name == "" {
		name = member.Username
	}

	status := member.Status
	if status == "" {
		status = "offline"
	}

	most, least := mctx.Store.WordUsage(target.ID)

	e := embed.NewEmbed().
		SetColor(EmbedColor).
		SetTitle(fmt.Sprintf("%s's Stats", name)).
		SetDescription(fmt.Sprintf("Here are the stats for %s:", name)).
		AddField("Status", capitalize(status)).
		AddField("Most Used Word", most).
		AddField("Least Used Word", least).
		InlineAllFields()
	if member.AvatarURL != "" {
		e.SetThumbnail(member.AvatarURL)
	}

	return mctx.Gateway.ReplyEmbed(ctx, m, e.MessageEmbed)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
