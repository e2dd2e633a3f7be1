package command

import (
	"context"
	"fmt"

	"babble-bot/pkg/cmd"
)

type RandomWordCommand struct{}

func (c *RandomWordCommand) Name() string         { return "randomword" }
func (c *RandomWordCommand) Description() string  { return "Pick a random German word and translate it" }
func (c *RandomWordCommand) Match(in string) bool { return cmd.Exact("!randomword german").Match(in) }
func (c *RandomWordCommand) FailureReply() string {
	return "Sorry, there was an error translating the word."
}

func (c *RandomWordCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	mctx, err := messageContext(inv)
	if err != nil {
		return err
	}

	words := mctx.Store.ForeignWords()
	if len(words) == 0 {
		return mctx.Gateway.Reply(ctx, mctx.Message, "No German words found.")
	}

	word := words[mctx.pick(len(words))]

	target := mctx.Settings.TargetLang
	if target == "" {
		target = "en"
	}

	res, err := mctx.Translator.Translate(ctx, word, target)
	if err != nil {
		return fmt.Errorf("translate %q: %w", word, err)
	}

	return mctx.Gateway.Reply(ctx, mctx.Message,
		fmt.Sprintf("**German Word:** %s\n**Translation:** %s", word, res.Text))
}
