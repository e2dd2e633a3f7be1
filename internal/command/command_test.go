package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"babble-bot/internal/discordtypes"
	"babble-bot/internal/storage"
	"babble-bot/internal/translate"
	"babble-bot/internal/version"
	"babble-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

type fakeGateway struct {
	texts   []string
	embeds  []*discordgo.MessageEmbed
	members map[string]*discordtypes.Member
	lookups []string
}

func (g *fakeGateway) Reply(_ context.Context, _ *discordtypes.Message, content string) error {
	g.texts = append(g.texts, content)
	return nil
}

func (g *fakeGateway) ReplyEmbed(_ context.Context, _ *discordtypes.Message, e *discordgo.MessageEmbed) error {
	g.embeds = append(g.embeds, e)
	return nil
}

func (g *fakeGateway) Member(_ context.Context, guildID, userID string) (*discordtypes.Member, error) {
	g.lookups = append(g.lookups, userID)
	m, ok := g.members[userID]
	if !ok {
		return nil, errors.New("unknown member")
	}
	return m, nil
}

type fakeTranslator struct {
	text string
	err  error
	got  []string
}

func (f *fakeTranslator) Translate(_ context.Context, text, lang string) (translate.Result, error) {
	f.got = append(f.got, text+">"+lang)
	if f.err != nil {
		return translate.Result{}, f.err
	}
	return translate.Result{Text: f.text}, nil
}

type fixture struct {
	gw    *fakeGateway
	tr    *fakeTranslator
	store *storage.Store
	paths storage.Paths
	src   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	paths := storage.Paths{
		LearnedWords: filepath.Join(dir, "learned_words.json"),
		ForeignWords: filepath.Join(dir, "german_words.json"),
		History:      filepath.Join(dir, "messageHistory.json"),
	}
	return &fixture{
		gw:    &fakeGateway{members: map[string]*discordtypes.Member{}},
		tr:    &fakeTranslator{text: "tree"},
		paths: paths,
		src:   filepath.Join(dir, "main.go"),
	}
}

func (f *fixture) open() {
	f.store = storage.Open(f.paths)
}

func (f *fixture) run(t *testing.T, c cmd.Command, msg *discordtypes.Message) error {
	t.Helper()
	if f.store == nil {
		f.open()
	}
	mctx := &MessageContext{
		Message:    msg,
		Gateway:    f.gw,
		Store:      f.store,
		Translator: f.tr,
		Settings:   Settings{SourcePath: f.src, TargetLang: "en"},
		Pick:       func(n int) int { return n - 1 },
	}
	return c.Run(context.Background(), cmd.NewInvocation(msg.Content, mctx))
}

func message(authorID, content string, mentions ...discordtypes.User) *discordtypes.Message {
	return &discordtypes.Message{
		ID:       "m1",
		GuildID:  "g1",
		Author:   discordtypes.User{ID: authorID, Username: "name-" + authorID},
		Content:  content,
		Mentions: mentions,
	}
}

func fieldValue(e *discordgo.MessageEmbed, name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestRegisterDefaultsOrderAndMatching(t *testing.T) {
	r := cmd.NewRegistry()
	RegisterDefaults(r)

	var names []string
	for _, c := range r.GetAll() {
		names = append(names, c.Name())
	}
	if strings.Join(names, ",") != "stats,viewfiles,randomword,help" {
		t.Fatalf("registered = %v", names)
	}

	cases := map[string]string{
		"!stats":             "stats",
		"!stats <@123>":      "stats",
		"!statsplease":       "stats",
		"!viewfiles":         "viewfiles",
		"!viewfiles now":     "",
		"!randomword german": "randomword",
		"!randomword French": "",
		"!help":              "help",
		"hello !help":        "",
	}
	for input, want := range cases {
		matched := r.Matching(input)
		got := ""
		if len(matched) > 0 {
			got = matched[0].Name()
		}
		if got != want || len(matched) > 1 {
			t.Errorf("Matching(%q) = %v, want %q", input, matched, want)
		}
	}
}

func TestStatsForAuthor(t *testing.T) {
	f := newFixture(t)
	f.open()
	f.store.Append("u1", storage.MessageRecord{Content: "a a b"})
	f.store.Append("u1", storage.MessageRecord{Content: "b c"})
	f.gw.members["u1"] = &discordtypes.Member{Status: "idle", AvatarURL: "https://cdn/avatar.png"}

	if err := f.run(t, &StatsCommand{}, message("u1", "!stats")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(f.gw.embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(f.gw.embeds))
	}
	e := f.gw.embeds[0]
	if e.Title != "name-u1's Stats" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Thumbnail == nil || e.Thumbnail.URL != "https://cdn/avatar.png" {
		t.Errorf("Thumbnail = %+v", e.Thumbnail)
	}
	if got := fieldValue(e, "Status"); got != "Idle" {
		t.Errorf("Status = %q, want Idle", got)
	}
	if got := fieldValue(e, "Most Used Word"); got != "a" {
		t.Errorf("Most Used Word = %q, want a", got)
	}
	if got := fieldValue(e, "Least Used Word"); got != "c" {
		t.Errorf("Least Used Word = %q, want c", got)
	}
	for _, field := range e.Fields {
		if !field.Inline {
			t.Errorf("field %q not inline", field.Name)
		}
	}
}

func TestStatsForMentionedUser(t *testing.T) {
	f := newFixture(t)
	f.gw.members["u2"] = &discordtypes.Member{}

	target := discordtypes.User{ID: "u2", Username: "target"}
	if err := f.run(t, &StatsCommand{}, message("u1", "!stats <@u2>", target)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(f.gw.lookups) != 1 || f.gw.lookups[0] != "u2" {
		t.Fatalf("member lookups = %v, want [u2]", f.gw.lookups)
	}
	e := f.gw.embeds[0]
	if e.Title != "target's Stats" {
		t.Errorf("Title = %q", e.Title)
	}
	if got := fieldValue(e, "Status"); got != "Offline" {
		t.Errorf("Status = %q, want Offline", got)
	}
	if got := fieldValue(e, "Most Used Word"); got != "N/A" {
		t.Errorf("Most Used Word = %q, want N/A", got)
	}
}

func TestStatsLookupFailure(t *testing.T) {
	f := newFixture(t)

	err := f.run(t, &StatsCommand{}, message("ghost", "!stats"))
	if err == nil {
		t.Fatal("Run() error = nil, want lookup failure")
	}
	if len(f.gw.embeds) != 0 {
		t.Fatal("embed sent despite failure")
	}
	if reply, ok := FailureReply(&StatsCommand{}); !ok || !strings.Contains(reply, "error fetching the stats") {
		t.Fatalf("FailureReply() = %q, %v", reply, ok)
	}
}

func TestViewFilesReportsSizes(t *testing.T) {
	f := newFixture(t)
	mustWrite(t, f.paths.LearnedWords, strings.Repeat("x", 2048))
	mustWrite(t, f.paths.History, strings.Repeat("y", 512))
	mustWrite(t, f.src, "package main\n\nfunc main() {}\n")

	if err := f.run(t, &ViewFilesCommand{}, message("u1", "!viewfiles")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	e := f.gw.embeds[0]
	want := map[string]string{
		"learned_words.json":   "2.00 KB",
		"messageHistory.json":  "0.50 KB",
		"Bot Source (main.go)": FormatKB(int64(len("package main\n\nfunc main() {}\n"))),
		"Bot Source Lines":     "4 lines of code",
	}
	for name, value := range want {
		if got := fieldValue(e, name); got != value {
			t.Errorf("%s = %q, want %q", name, got, value)
		}
	}
}

func TestViewFilesTracksDiskChanges(t *testing.T) {
	f := newFixture(t)
	f.open()
	mustWrite(t, f.paths.LearnedWords, "[]")
	mustWrite(t, f.src, "x")

	f.store.Append("u1", storage.MessageRecord{Content: "hello", Timestamp: 1})
	if err := f.store.Save(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(f.paths.History)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.run(t, &ViewFilesCommand{}, message("u1", "!viewfiles")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := fieldValue(f.gw.embeds[0], "messageHistory.json"); got != FormatKB(info.Size()) {
		t.Fatalf("history size = %q, want %q", got, FormatKB(info.Size()))
	}
}

func TestViewFilesMissingFile(t *testing.T) {
	f := newFixture(t)
	mustWrite(t, f.paths.LearnedWords, "[]")

	if err := f.run(t, &ViewFilesCommand{}, message("u1", "!viewfiles")); err == nil {
		t.Fatal("Run() error = nil with missing history file")
	}
}

func TestRandomWordTranslates(t *testing.T) {
	f := newFixture(t)
	mustWrite(t, f.paths.ForeignWords, `["Haus", "Baum"]`)

	if err := f.run(t, &RandomWordCommand{}, message("u1", "!randomword german")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(f.tr.got) != 1 || f.tr.got[0] != "Baum>en" {
		t.Fatalf("translations = %v, want [Baum>en]", f.tr.got)
	}
	want := "**German Word:** Baum\n**Translation:** tree"
	if len(f.gw.texts) != 1 || f.gw.texts[0] != want {
		t.Fatalf("replies = %q, want %q", f.gw.texts, want)
	}
}

func TestRandomWordEmptyVocabulary(t *testing.T) {
	f := newFixture(t)

	if err := f.run(t, &RandomWordCommand{}, message("u1", "!randomword german")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.gw.texts) != 1 || f.gw.texts[0] != "No German words found." {
		t.Fatalf("replies = %q", f.gw.texts)
	}
	if len(f.tr.got) != 0 {
		t.Fatal("translator called with empty vocabulary")
	}
}

func TestRandomWordTranslationFailure(t *testing.T) {
	f := newFixture(t)
	mustWrite(t, f.paths.ForeignWords, `["Haus"]`)
	f.tr.err = errors.New("timeout")

	if err := f.run(t, &RandomWordCommand{}, message("u1", "!randomword german")); err == nil {
		t.Fatal("Run() error = nil on translation failure")
	}
	if len(f.gw.texts) != 0 {
		t.Fatalf("replies = %q, want none from the command itself", f.gw.texts)
	}
}

func TestHelpIsStatic(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		if err := f.run(t, &HelpCommand{}, message("u1", "!help")); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	a, b := f.gw.embeds[0], f.gw.embeds[1]
	if len(a.Fields) < 4 || len(a.Fields) != len(b.Fields) {
		t.Fatalf("help fields = %d and %d", len(a.Fields), len(b.Fields))
	}
	if !strings.HasPrefix(a.Description, version.AppDescription) {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Footer == nil || a.Footer.Text != version.AppName+" "+version.BuildInfo() {
		t.Errorf("Footer = %+v", a.Footer)
	}
	if _, ok := FailureReply(&HelpCommand{}); ok {
		t.Fatal("help should not have a failure reply")
	}
}

func TestWrongContextType(t *testing.T) {
	err := (&HelpCommand{}).Run(context.Background(), cmd.NewInvocation("!help", "not a context"))
	if !errors.Is(err, errWrongContext) {
		t.Fatalf("Run() error = %v, want errWrongContext", err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
