package discord

import (
	"context"
	"fmt"

	"babble-bot/internal/discordtypes"

	"github.com/bwmarrin/discordgo"
)

func reference(m *discordtypes.Message) *discordgo.MessageReference {
	return &discordgo.MessageReference{
		MessageID: m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
	}
}

// Reply answers m in its channel as a threaded reply.
func (b *Bot) Reply(ctx context.Context, m *discordtypes.Message, content string) error {
	if _, err := b.dg.ChannelMessageSendReply(m.ChannelID, content, reference(m), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send reply to %s: %w", m.ID, err)
	}
	return nil
}

// ReplyEmbed answers m with a single embed.
func (b *Bot) ReplyEmbed(ctx context.Context, m *discordtypes.Message, e *discordgo.MessageEmbed) error {
	_, err := b.dg.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{e},
		Reference: reference(m),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send embed to %s: %w", m.ID, err)
	}
	return nil
}

// Member looks the user up in the state cache first, then over REST.
// Presence comes from the state cache only; users without one are offline.
func (b *Bot) Member(ctx context.Context, guildID, userID string) (*discordtypes.Member, error) {
	member, err := b.dg.State.Member(guildID, userID)
	if err != nil {
		member, err = b.dg.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("fetch member %s in guild %s: %w", userID, guildID, err)
		}
	}

	var presence *discordgo.Presence
	if p, err := b.dg.State.Presence(guildID, userID); err == nil {
		presence = p
	}
	return toMember(member, presence), nil
}

func toMember(m *discordgo.Member, p *discordgo.Presence) *discordtypes.Member {
	out := &discordtypes.Member{Status: string(discordgo.StatusOffline)}
	if m.User != nil {
		out.User = discordtypes.User{ID: m.User.ID, Username: m.User.Username}
		out.AvatarURL = m.User.AvatarURL("")
	}
	if p != nil && p.Status != "" {
		out.Status = string(p.Status)
	}
	return out
}
