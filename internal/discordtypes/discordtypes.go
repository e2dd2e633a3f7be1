// /discordtypes/discordtypes.go
package discordtypes

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

type User struct {
	ID       string
	Username string
}

// Message is an incoming chat message, stripped down to what the bot reads.
type Message struct {
	ID        string
	ChannelID string
	GuildID   string
	Author    User
	Content   string
	Mentions  []User
	Timestamp time.Time

	Bot         bool // authored by a bot account
	System      bool // join notices, pins and other non-user messages
	MentionsBot bool
}

// FirstMention returns the first mentioned user, if any.
func (m *Message) FirstMention() (User, bool) {
	if len(m.Mentions) == 0 {
		return User{}, false
	}
	return m.Mentions[0], true
}

// Member is a guild member with presence information.
type Member struct {
	User
	Status    string // online, idle, dnd, offline
	AvatarURL string
}

// Gateway is what the bot needs from the chat transport.
type Gateway interface {
	Reply(ctx context.Context, to *Message, content string) error
	ReplyEmbed(ctx context.Context, to *Message, embed *discordgo.MessageEmbed) error
	Member(ctx context.Context, guildID, userID string) (*Member, error)
}
