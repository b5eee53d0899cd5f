package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"docuchat/client/internal/gateway"
	"docuchat/client/internal/model"
)

// shell is a line-oriented front end over the stores. Every command
// delegates to a store method and prints the resulting state; the shell
// itself holds no domain data.
type shell struct {
	app    *App
	reader *bufio.Reader
	out    io.Writer
}

func newShell(app *App, in io.Reader, out io.Writer) *shell {
	return &shell{app: app, reader: bufio.NewReader(in), out: out}
}

func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "docuchat - type 'help' for commands")
	for {
		fmt.Fprint(s.out, s.prompt())
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := s.dispatch(ctx, cmd, arg); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func (s *shell) prompt() string {
	if chat := s.app.Chats.CurrentChat(); chat != nil {
		return fmt.Sprintf("[%s]> ", chat.Title)
	}
	if user := s.app.Auth.CurrentUser(); user != nil {
		return fmt.Sprintf("[%s]> ", user.Email)
	}
	return "> "
}

func (s *shell) dispatch(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "login":
		return s.login(ctx)
	case "signup":
		return s.signUp(ctx)
	case "logout":
		s.app.Auth.Logout(ctx)
		s.app.Chats.Reset()
		s.app.Documents.Reset()
		fmt.Fprintln(s.out, "signed out")
		return nil
	case "whoami":
		return s.whoami()
	case "profile":
		return s.updateProfile(ctx)
	case "chats":
		return s.listChats(ctx)
	case "open":
		return s.openChat(ctx, arg)
	case "new":
		return s.newChat(ctx, arg)
	case "say":
		return s.say(ctx, arg)
	case "refresh":
		return s.refresh(ctx)
	case "rmchat":
		return s.deleteChat(ctx, arg)
	case "docs":
		return s.listDocuments(ctx, arg)
	case "upload":
		return s.upload(ctx, arg)
	case "doc":
		return s.openDocument(ctx, arg)
	case "pick":
		return s.toggleDocument(arg)
	case "edit":
		return s.editDocument(ctx, arg)
	case "reindex":
		return s.reindex(ctx, arg)
	case "rmdoc":
		return s.deleteDocument(ctx, arg)
	case "sidebar":
		s.app.UI.ToggleSidebar(ctx)
		fmt.Fprintf(s.out, "sidebar open: %v\n", s.app.UI.State().SidebarOpen)
		return nil
	case "panel":
		s.app.UI.ToggleDocumentPanel(ctx)
		fmt.Fprintf(s.out, "document panel open: %v\n", s.app.UI.State().DocumentPanelOpen)
		return nil
	case "theme":
		s.app.UI.SetTheme(ctx, arg)
		fmt.Fprintf(s.out, "theme: %s\n", s.app.UI.State().Theme)
		return nil
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `commands:
  login / signup / logout / whoami / profile
  chats              list chats
  open <n|id>        open a chat by list number or id
  new [title]        create a chat
  say <text>         ask a question in the open chat
  refresh            re-fetch messages for the open chat
  rmchat <n|id>      delete a chat
  docs [category]    list documents
  upload <path>      upload a document
  doc <n|id>         show document details
  pick <n|id>        toggle a document for retrieval
  edit <n|id>        change a document's title or category
  reindex <n|id>     re-run document ingestion
  rmdoc <n|id>       delete a document
  sidebar / panel / theme <name>
  quit`)
}

func (s *shell) readLine(label string) (string, error) {
	fmt.Fprintf(s.out, "%s: ", label)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *shell) login(ctx context.Context) error {
	email, err := s.readLine("email")
	if err != nil {
		return err
	}
	password, err := s.readLine("password")
	if err != nil {
		return err
	}
	if err := s.app.Auth.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "signed in as %s\n", s.app.Auth.CurrentUser().Email)
	return nil
}

func (s *shell) signUp(ctx context.Context) error {
	email, err := s.readLine("email")
	if err != nil {
		return err
	}
	password, err := s.readLine("password (min 8 chars)")
	if err != nil {
		return err
	}
	if err := s.app.Auth.SignUp(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "account created, signed in as %s\n", s.app.Auth.CurrentUser().Email)
	return nil
}

func (s *shell) whoami() error {
	user := s.app.Auth.CurrentUser()
	if user == nil {
		fmt.Fprintln(s.out, "not signed in")
		return nil
	}
	fmt.Fprintf(s.out, "%s (%s)\n", user.Email, user.ID)
	return nil
}

func (s *shell) updateProfile(ctx context.Context) error {
	if s.app.Auth.CurrentUser() == nil {
		return errors.New("not signed in")
	}
	fullName, err := s.readLine("full name (blank keeps current)")
	if err != nil {
		return err
	}
	user, err := s.app.Auth.UpdateProfile(ctx, gateway.UpdateUserRequest{FullName: fullName})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "profile updated: %s\n", user.FullName)
	return nil
}

func (s *shell) listChats(ctx context.Context) error {
	if err := s.app.Chats.FetchChats(ctx); err != nil {
		return err
	}
	chats := s.app.Chats.Chats()
	if len(chats) == 0 {
		fmt.Fprintln(s.out, "no chats yet, use 'new'")
		return nil
	}
	for i, chat := range chats {
		fmt.Fprintf(s.out, "%2d. %s (%s)\n", i+1, chat.Title, chat.ID)
	}
	return nil
}

// resolveChat accepts either a 1-based index into the last listing or a
// raw chat id.
func (s *shell) resolveChat(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("chat reference required")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		chats := s.app.Chats.Chats()
		if n < 1 || n > len(chats) {
			return "", fmt.Errorf("no chat numbered %d", n)
		}
		return chats[n-1].ID, nil
	}
	return ref, nil
}

func (s *shell) openChat(ctx context.Context, ref string) error {
	id, err := s.resolveChat(ref)
	if err != nil {
		return err
	}
	if err := s.app.Chats.OpenChat(ctx, id); err != nil {
		return err
	}
	for _, msg := range s.app.Chats.Messages() {
		s.printMessage(msg)
	}
	return nil
}

func (s *shell) newChat(ctx context.Context, title string) error {
	chat, err := s.app.Chats.CreateChat(ctx, title)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "opened new chat %q\n", chat.Title)
	return nil
}

func (s *shell) say(ctx context.Context, query string) error {
	reply, err := s.app.Chats.SendMessage(ctx, query, s.app.Documents.Selected())
	if err != nil {
		return err
	}
	s.printMessage(*reply)
	return nil
}

func (s *shell) refresh(ctx context.Context) error {
	if err := s.app.Chats.RefreshMessages(ctx); err != nil {
		return err
	}
	for _, msg := range s.app.Chats.Messages() {
		s.printMessage(msg)
	}
	return nil
}

func (s *shell) deleteChat(ctx context.Context, ref string) error {
	id, err := s.resolveChat(ref)
	if err != nil {
		return err
	}
	if err := s.app.Chats.DeleteChat(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "chat deleted")
	return nil
}

func (s *shell) printMessage(msg model.Message) {
	marker := ""
	if msg.Pending {
		marker = " (sending...)"
	}
	fmt.Fprintf(s.out, "%s%s: %s\n", msg.Role, marker, msg.Content)
	if msg.Metadata == nil {
		return
	}
	for _, src := range msg.Metadata.Sources {
		fmt.Fprintf(s.out, "    source: %s (%.2f)\n", src.DocumentName, src.Score)
	}
}

func (s *shell) listDocuments(ctx context.Context, category string) error {
	if err := s.app.Documents.FetchDocuments(ctx, category); err != nil {
		return err
	}
	docs := s.app.Documents.Documents()
	if len(docs) == 0 {
		fmt.Fprintln(s.out, "no documents")
		return nil
	}
	for i, doc := range docs {
		mark := " "
		if s.app.Documents.IsSelected(doc.ID) {
			mark = "*"
		}
		status := "ready"
		if !doc.Processed {
			status = "processing"
			if doc.ProcessingError != "" {
				status = "failed"
			}
		}
		fmt.Fprintf(s.out, "%s %2d. %s [%s] (%s)\n", mark, i+1, doc.Title, status, doc.ID)
	}
	return nil
}

func (s *shell) resolveDocument(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("document reference required")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		docs := s.app.Documents.Documents()
		if n < 1 || n > len(docs) {
			return "", fmt.Errorf("no document numbered %d", n)
		}
		return docs[n-1].ID, nil
	}
	return ref, nil
}

func (s *shell) upload(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("file path required")
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	title, err := s.readLine("title (blank for filename)")
	if err != nil {
		return err
	}
	if title == "" {
		title = filepath.Base(path)
	}
	category, err := s.readLine("category (optional)")
	if err != nil {
		return err
	}

	doc, err := s.app.Documents.Upload(ctx, filepath.Base(path), file, gateway.DocumentMetadata{
		Title:    title,
		Category: category,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "uploaded %q, ingestion started (%s)\n", doc.Title, doc.ID)
	return nil
}

func (s *shell) openDocument(ctx context.Context, ref string) error {
	id, err := s.resolveDocument(ref)
	if err != nil {
		return err
	}
	doc, err := s.app.Documents.OpenDocument(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s\n  category: %s\n  processed: %v\n", doc.Title, doc.Category, doc.Processed)
	if doc.ProcessingError != "" {
		fmt.Fprintf(s.out, "  ingestion error: %s\n", doc.ProcessingError)
	}
	if doc.Description != "" {
		fmt.Fprintf(s.out, "  %s\n", doc.Description)
	}
	return nil
}

func (s *shell) toggleDocument(ref string) error {
	id, err := s.resolveDocument(ref)
	if err != nil {
		return err
	}
	s.app.Documents.ToggleSelection(id)
	if s.app.Documents.IsSelected(id) {
		fmt.Fprintf(s.out, "document %s added to retrieval scope\n", id)
	} else {
		fmt.Fprintf(s.out, "document %s removed from retrieval scope\n", id)
	}
	return nil
}

func (s *shell) editDocument(ctx context.Context, ref string) error {
	id, err := s.resolveDocument(ref)
	if err != nil {
		return err
	}
	title, err := s.readLine("title")
	if err != nil {
		return err
	}
	category, err := s.readLine("category")
	if err != nil {
		return err
	}
	doc, err := s.app.Documents.Update(ctx, id, gateway.DocumentMetadata{Title: title, Category: category})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "updated %q\n", doc.Title)
	return nil
}

func (s *shell) reindex(ctx context.Context, ref string) error {
	id, err := s.resolveDocument(ref)
	if err != nil {
		return err
	}
	doc, err := s.app.Documents.Reindex(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "reindexing %q\n", doc.Title)
	return nil
}

func (s *shell) deleteDocument(ctx context.Context, ref string) error {
	id, err := s.resolveDocument(ref)
	if err != nil {
		return err
	}
	if err := s.app.Documents.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "document deleted")
	return nil
}
