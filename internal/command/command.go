package command

import (
	"errors"
	"math/rand/v2"

	"babble-bot/internal/discordtypes"
	"babble-bot/internal/storage"
	"babble-bot/internal/translate"
	"babble-bot/pkg/cmd"
)

// EmbedColor is used for every embed the bot sends.
const EmbedColor = 0x2f8f83

var errWrongContext = errors.New("wrong context type")

// Settings are the static knobs commands read.
type Settings struct {
	SourcePath string // file reported by !viewfiles
	TargetLang string // translation target for !randomword
}

// MessageContext is what a chat message carries into a command run.
type MessageContext struct {
	Message    *discordtypes.Message
	Gateway    discordtypes.Gateway
	Store      *storage.Store
	Translator translate.Translator
	Settings   Settings
	Pick       func(n int) int // uniform index in [0, n)
}

func (c *MessageContext) pick(n int) int {
	if c.Pick != nil {
		return c.Pick(n)
	}
	return rand.IntN(n)
}

func messageContext(inv *cmd.Invocation) (*MessageContext, error) {
	mctx, ok := inv.Data.(*MessageContext)
	if !ok || mctx.Message == nil {
		return nil, errWrongContext
	}
	return mctx, nil
}

// FailureReplier is implemented by commands that answer a failed run with a
// fixed apology instead of staying silent.
type FailureReplier interface {
	FailureReply() string
}

// FailureReply returns the apology for c, looking through middleware.
func FailureReply(c cmd.Command) (string, bool) {
	fr, ok := cmd.Root(c).(FailureReplier)
	if !ok {
		return "", false
	}
	return fr.FailureReply(), true
}

// RegisterDefaults registers the chat commands in dispatch order.
func RegisterDefaults(r *cmd.Registry, mws ...cmd.Middleware) {
	for _, c := range []cmd.Command{
		&StatsCommand{},
		&ViewFilesCommand{},
		&RandomWordCommand{},
		&HelpCommand{},
	} {
		r.Register(cmd.Apply(c, mws...))
	}
}
