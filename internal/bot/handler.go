// Package bot wires the per-message pipeline: filter, cooldown, commands,
// echo and babble replies, then history recording.
package bot

import (
	"context"
	"errors"
	"log"
	"time"

	"babble-bot/internal/command"
	"babble-bot/internal/cooldown"
	"babble-bot/internal/discordtypes"
	"babble-bot/internal/observability"
	"babble-bot/internal/respond"
	"babble-bot/internal/storage"
	"babble-bot/internal/translate"
	"babble-bot/pkg/cmd"
	"babble-bot/pkg/jobmgr"

	"github.com/google/uuid"
)

// Handler processes incoming chat messages. It is safe for concurrent use.
type Handler struct {
	Store      *storage.Store
	Cooldown   *cooldown.Tracker
	Generator  *respond.Generator
	Registry   *cmd.Registry
	Gateway    discordtypes.Gateway
	Translator translate.Translator
	Settings   command.Settings
	Metrics    *observability.Metrics

	jobs *jobmgr.Manager
	now  func() time.Time
}

type Option func(*Handler)

// WithClock overrides the time source used for cooldowns and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithMetrics attaches Prometheus counters to the pipeline.
func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handler) { h.Metrics = m }
}

func NewHandler(store *storage.Store, gw discordtypes.Gateway, tr translate.Translator, reg *cmd.Registry, gen *respond.Generator, cd *cooldown.Tracker, settings command.Settings, opts ...Option) *Handler {
	h := &Handler{
		Store:      store,
		Cooldown:   cd,
		Generator:  gen,
		Registry:   reg,
		Gateway:    gw,
		Translator: tr,
		Settings:   settings,
		now:        time.Now,
	}
	h.jobs = jobmgr.NewManager(func(status string) {
		log.Println("[DEBUG] [BABBLE]", status)
	})
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleMessage runs one message through the pipeline.
func (h *Handler) HandleMessage(ctx context.Context, m *discordtypes.Message) {
	if m == nil || m.Bot || m.System {
		h.Metrics.Message(observability.OutcomeIgnored)
		return
	}

	now := h.now()
	if !h.Cooldown.Admit(m.Author.ID, now) {
		h.Metrics.Message(observability.OutcomeCooldown)
		return
	}
	h.Metrics.Message(observability.OutcomeAccepted)

	handled := h.dispatch(ctx, m)

	if m.MentionsBot {
		h.echo(ctx, m)
	}
	h.maybeBabble(m)

	if handled {
		return
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = now
	}
	h.Store.Append(m.Author.ID, storage.MessageRecord{
		Content:   m.Content,
		Timestamp: ts.UnixMilli(),
	})
	err := h.Store.Save()
	h.Metrics.Save(err)
	if err != nil {
		log.Println("[ERR] Error saving message history:", err)
	}
}

// dispatch runs every matching command in registration order and reports
// whether any matched.
func (h *Handler) dispatch(ctx context.Context, m *discordtypes.Message) bool {
	matched := h.Registry.Matching(m.Content)
	if len(matched) == 0 {
		return false
	}

	mctx := &command.MessageContext{
		Message:    m,
		Gateway:    h.Gateway,
		Store:      h.Store,
		Translator: h.Translator,
		Settings:   h.Settings,
		Pick:       h.Generator.Pick,
	}

	for _, c := range matched {
		err := c.Run(ctx, cmd.NewInvocation(m.Content, mctx))
		if err == nil {
			h.Metrics.Reply(observability.ReplyCommand)
			continue
		}

		log.Printf("[ERR] Command %s failed: %v", c.Name(), err)
		reply, ok := command.FailureReply(c)
		if !ok {
			continue
		}
		if err := h.Gateway.Reply(ctx, m, reply); err != nil {
			log.Println("[ERR] Error sending failure reply:", err)
			continue
		}
		h.Metrics.Reply(observability.ReplyFailure)
	}
	return true
}

func (h *Handler) echo(ctx context.Context, m *discordtypes.Message) {
	text, ok := h.Generator.Echo(h.Store, m.Author.ID)
	if !ok {
		return
	}
	if err := h.Gateway.Reply(ctx, m, text); err != nil {
		log.Println("[ERR] Error sending echo reply:", err)
		return
	}
	h.Metrics.Reply(observability.ReplyEcho)
}

func (h *Handler) maybeBabble(m *discordtypes.Message) {
	if !h.Generator.ShouldBabble() {
		return
	}
	sentence := h.Generator.Sentence(h.Store.LearnedWords())
	if sentence == "" {
		return
	}

	name := "babble:" + uuid.NewString()
	err := h.jobs.StartAfter(name, h.Generator.Delay(), func(ctx context.Context) error {
		if sentence == "" {
			return nil
		}
		if err := h.Gateway.Reply(ctx, m, sentence); err != nil {
			return err
		}
		h.Metrics.Reply(observability.ReplyBabble)
		return nil
	})
	if errors.Is(err, jobmgr.ErrClosed) {
		log.Println("[DEBUG] [BABBLE] Shutting down, reply dropped")
		return
	}
	if err != nil {
		log.Println("[WARN] [BABBLE] Could not schedule reply:", err)
	}
}

// PendingJobs returns the number of babble replies not yet sent.
func (h *Handler) PendingJobs() int {
	return h.jobs.Len()
}

// Close stops accepting babble replies, cancels pending ones, waits for running
// ones and saves history.
func (h *Handler) Close() error {
	if n := h.jobs.Close(); n > 0 {
		log.Printf("[INFO] Cancelled %d pending babble replies", n)
	}
	h.jobs.Wait()

	err := h.Store.Save()
	h.Metrics.Save(err)
	return err
}
