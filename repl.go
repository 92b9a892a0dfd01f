package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"paperdesk/archive"
	"paperdesk/chat"
	"paperdesk/core"
	"paperdesk/db"
	"paperdesk/filestore"
	"paperdesk/logging"
	"paperdesk/pdfprocessor"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Output colors for the reading loop.
var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	answerColor  = color.New(color.FgWhite)
	noticeColor  = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	captionColor = color.New(color.FgHiBlack)
)

// REPL is the interactive reading loop. Lines starting with ':' are
// commands; everything else is a question about the open paper.
type REPL struct {
	cfg      *core.Config
	logger   *logging.Logger
	session  *core.Session
	cache    *pdfprocessor.DocumentCache
	library  *filestore.Store
	repo     *db.Repository
	chat     *chat.Client
	archiver *archive.Manager

	in  *bufio.Scanner
	out io.Writer
}

// NewREPL wires the reading loop over the given collaborators. Input is
// read from in and all output goes to out.
func NewREPL(cfg *core.Config, logger *logging.Logger, repo *db.Repository, chatClient *chat.Client, archiver *archive.Manager, library *filestore.Store, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		cfg:      cfg,
		logger:   logger,
		session:  core.NewSession(),
		cache:    pdfprocessor.NewDocumentCache(),
		library:  library,
		repo:     repo,
		chat:     chatClient,
		archiver: archiver,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run drives the loop until :quit, end of input, or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	r.seedTags(ctx)
	r.printWelcome()

	for {
		promptColor.Fprint(r.out, r.promptLabel())
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			fmt.Fprintln(r.out, "bye")
			return nil
		}
		if strings.HasPrefix(line, ":") {
			r.runCommand(ctx, line)
			continue
		}
		r.ask(ctx, line)
	}
}

func (r *REPL) promptLabel() string {
	if r.session.HasDocument() {
		return fmt.Sprintf("[%s] > ", r.session.DocumentName())
	}
	return "> "
}

func (r *REPL) printWelcome() {
	fmt.Fprintln(r.out, "paperdesk - ask questions about a paper, archive the answers")
	fmt.Fprintln(r.out, "commands: :open <file.pdf>  :preview  :save [tags]  :notes [tags]  :tags  :export <file.csv>  :pdf <name> <dest>  :quit")
}

func (r *REPL) seedTags(ctx context.Context) {
	tags, err := r.repo.AllTags(ctx)
	if err != nil {
		r.logger.Warn("failed to load tag vocabulary", zap.Error(err))
		return
	}
	r.session.SeedTags(tags)
}

func (r *REPL) runCommand(ctx context.Context, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case ":open":
		r.open(rest)
	case ":preview":
		r.preview()
	case ":pdf":
		r.fetchPDF(rest)
	case ":save":
		r.save(ctx, rest)
	case ":notes":
		r.listNotes(ctx, rest)
	case ":tags":
		r.listTags()
	case ":export":
		r.export(ctx, rest)
	case ":help", ":h":
		r.printWelcome()
	default:
		errorColor.Fprintf(r.out, "unknown command %s (try :help)\n", cmd)
	}
}

// open loads a PDF into the library and makes it the active paper.
func (r *REPL) open(path string) {
	if path == "" {
		errorColor.Fprintln(r.out, "usage: :open <file.pdf>")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot read %s: %v\n", path, err)
		return
	}

	name := filepath.Base(path)
	storedPath, isNew, err := r.library.Save(name, data)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot store %s: %v\n", name, err)
		return
	}

	doc, cached, err := r.cache.Extract(data, name)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot extract %s: %v\n", name, err)
		return
	}

	reset := r.session.SetDocument(doc.Name, doc.Text, storedPath)
	r.logger.Info("paper opened",
		zap.String("paper", doc.Name),
		zap.Int("pages", doc.TotalPages),
		zap.Int("extracted_pages", doc.ExtractedPages),
		zap.Int("chars", doc.CharCount()),
		zap.Bool("cached", cached),
		zap.Bool("new_in_library", isNew),
		zap.Bool("reset", reset))

	fmt.Fprintf(r.out, "opened %s: %d/%d pages with text, %d chars, ~%d tokens\n",
		doc.Name, doc.ExtractedPages, doc.TotalPages, doc.CharCount(), doc.TokenCount())
	if reset {
		noticeColor.Fprintln(r.out, "switched paper, chat history cleared")
	}
	if doc.CharCount() > r.cfg.WarnChars {
		noticeColor.Fprintf(r.out, "long paper (%d chars), answers may be slow\n", doc.CharCount())
	}
}

// preview shows the head and tail of the active paper's text.
func (r *REPL) preview() {
	if !r.session.HasDocument() {
		noticeColor.Fprintln(r.out, "no paper open, use :open <file.pdf> first")
		return
	}
	fmt.Fprintln(r.out, pdfprocessor.Preview(r.session.DocumentText(), 2000, 1000))
}

// fetchPDF copies a stored original out of the library.
func (r *REPL) fetchPDF(rest string) {
	name, dest, ok := strings.Cut(rest, " ")
	name, dest = strings.TrimSpace(name), strings.TrimSpace(dest)
	if !ok || name == "" || dest == "" {
		errorColor.Fprintln(r.out, "usage: :pdf <name> <dest>")
		return
	}
	data, err := r.library.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			noticeColor.Fprintf(r.out, "%s is not in the local library\n", name)
			return
		}
		errorColor.Fprintf(r.out, "cannot read %s: %v\n", name, err)
		return
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		errorColor.Fprintf(r.out, "cannot write %s: %v\n", dest, err)
		return
	}
	fmt.Fprintf(r.out, "copied %s to %s (%d bytes)\n", name, dest, len(data))
}

// ask sends a question about the active paper to the chat endpoint.
func (r *REPL) ask(ctx context.Context, question string) {
	if !r.session.HasDocument() {
		noticeColor.Fprintln(r.out, "no paper open, use :open <file.pdf> first")
		return
	}

	pending := append(r.session.History(), core.Exchange{Role: core.RoleUser, Content: question})

	askCtx, cancel := context.WithTimeout(ctx, r.cfg.AITimeout)
	defer cancel()

	answer, usage, err := r.chat.Ask(askCtx, r.session.DocumentText(), pending)
	if err != nil {
		r.logger.Error("question failed", zap.Error(err))
		errorColor.Fprintf(r.out, "question failed: %v\n", err)
		return
	}

	r.session.AppendExchange(core.RoleUser, question)
	r.session.AppendExchange(core.RoleAssistant, answer)

	answerColor.Fprintln(r.out, answer)
	if usage != nil {
		captionColor.Fprintln(r.out, formatUsage(*usage))
		r.logger.Info("usage",
			zap.Int("input_tokens", usage.InputTokens),
			zap.Int("cache_hit_tokens", usage.CacheHitTokens),
			zap.Int("cache_miss_tokens", usage.CacheMissTokens),
			zap.Int("output_tokens", usage.OutputTokens),
			zap.Int("total_tokens", usage.TotalTokens))
	}
}

// save archives the latest exchange. Tags are comma separated; a number
// picks the tag at that position in the :tags listing, anything else is a
// new free-typed tag.
func (r *REPL) save(ctx context.Context, rest string) {
	selected, typed := parseSaveArgs(rest, r.session.Tags())

	outcome, err := r.archiver.Archive(ctx, r.session, selected, typed)
	if err != nil {
		if err == archive.ErrNoExchange {
			noticeColor.Fprintln(r.out, "ask a question first, then :save the answer")
			return
		}
		r.logger.Error("archive failed", zap.Error(err))
		errorColor.Fprintf(r.out, "archive failed: %v\n", err)
		return
	}

	r.logger.Info("note archived",
		zap.Int64("note_id", outcome.NoteID),
		zap.String("paper", outcome.Note.PaperName),
		zap.String("tags", outcome.Note.Tags))
	fmt.Fprintf(r.out, "archived note #%d [%s] %s\n", outcome.NoteID, outcome.Note.Tags, outcome.Note.Summary)
}

func (r *REPL) listNotes(ctx context.Context, rest string) {
	filter := archive.NormalizeTags(rest)
	notes, err := r.repo.ListNotes(ctx, filter)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot list notes: %v\n", err)
		return
	}
	if len(notes) == 0 {
		fmt.Fprintln(r.out, "no notes")
		return
	}
	for _, note := range notes {
		fmt.Fprintln(r.out, formatNote(note))
	}
}

func (r *REPL) listTags() {
	tags := r.session.Tags()
	if len(tags) == 0 {
		fmt.Fprintln(r.out, "no tags yet")
		return
	}
	for i, tag := range tags {
		fmt.Fprintf(r.out, "%2d. %s\n", i+1, tag)
	}
}

func (r *REPL) export(ctx context.Context, path string) {
	if path == "" {
		errorColor.Fprintln(r.out, "usage: :export <file.csv>")
		return
	}
	notes, err := r.repo.ListNotes(ctx, nil)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot list notes: %v\n", err)
		return
	}
	file, err := os.Create(path)
	if err != nil {
		errorColor.Fprintf(r.out, "cannot create %s: %v\n", path, err)
		return
	}
	defer file.Close()
	if err := db.WriteNotesCSV(file, notes); err != nil {
		errorColor.Fprintf(r.out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "exported %d notes to %s\n", len(notes), path)
}

// parseSaveArgs splits :save arguments into vocabulary selections and
// free-typed tags. Numeric entries are 1-based positions in the
// vocabulary; out-of-range numbers are kept as literal tags.
func parseSaveArgs(rest string, vocab []string) (selected []string, typed string) {
	var typedParts []string
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= len(vocab) {
			selected = append(selected, vocab[n-1])
			continue
		}
		typedParts = append(typedParts, part)
	}
	return selected, strings.Join(typedParts, ",")
}

// formatUsage renders the token accounting caption shown under answers.
func formatUsage(u core.UsageRecord) string {
	return fmt.Sprintf("tokens: %d in (%d cache hit, %d miss), %d out, %d total",
		u.InputTokens, u.CacheHitTokens, u.CacheMissTokens, u.OutputTokens, u.TotalTokens)
}

// formatNote renders one line of the :notes listing.
func formatNote(n core.Note) string {
	return fmt.Sprintf("#%d %s [%s] %s | %s",
		n.ID, n.LoggedAt.Format("2006-01-02 15:04"), n.Tags, n.Summary, n.PaperName)
}
