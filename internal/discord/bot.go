package discord

import (
	"context"
	"fmt"
	"log"

	"babble-bot/internal/discordtypes"

	"github.com/bwmarrin/discordgo"
)

// MessageHandler receives every message the bot can see.
type MessageHandler interface {
	HandleMessage(ctx context.Context, m *discordtypes.Message)
}

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildPresences

// Bot is a Discord session that doubles as the reply gateway.
type Bot struct {
	dg *discordgo.Session
}

// New creates the session without connecting it.
func New(token string) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = intents
	return &Bot{dg: dg}, nil
}

// Run connects, delivers messages to handler and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context, handler MessageHandler) error {
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Message == nil || m.Author == nil {
			return
		}
		handler.HandleMessage(ctx, toMessage(m.Message, selfID(s)))
	})

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Closing Discord session...")
	return nil
}

// onReady is called when the bot is ready
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ Discord bot %v is running in %d guilds.", r.User.Username, len(r.Guilds))
}

func selfID(s *discordgo.Session) string {
	if s.State == nil || s.State.User == nil {
		return ""
	}
	return s.State.User.ID
}

// toMessage flattens a discordgo message. Anything other than a plain message
// or a reply counts as a system message.
func toMessage(m *discordgo.Message, botID string) *discordtypes.Message {
	out := &discordtypes.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		System:    m.Type != discordgo.MessageTypeDefault && m.Type != discordgo.MessageTypeReply,
	}
	if m.Author != nil {
		out.Author = discordtypes.User{ID: m.Author.ID, Username: m.Author.Username}
		out.Bot = m.Author.Bot
	}
	for _, u := range m.Mentions {
		if u == nil {
			continue
		}
		out.Mentions = append(out.Mentions, discordtypes.User{ID: u.ID, Username: u.Username})
		if botID != "" && u.ID == botID {
			out.MentionsBot = true
		}
	}
	return out
}
