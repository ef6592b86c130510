package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-blog/internal/adapter"
	"github.com/MKhiriev/go-blog/internal/logger"
	"github.com/MKhiriev/go-blog/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

const usage = `commands:
  register <username> <email> <password>
  login <email> <password>
  external <assertion>
  logout
  me
  blogs [search]
  blog <id>
  post <title> | <content>
  edit <id> <title> | <content>     (leave a side empty to keep it)
  delete <id>
  comments <blog id>
  comment <blog id> <content>
  uncomment <comment id>
  version
  help
  quit`

type command func(ctx context.Context, args string) (any, error)

type App struct {
	api adapter.BlogAPI

	in  io.Reader
	out io.Writer

	commands map[string]command
	logger   *logger.Logger
}

// NewApp builds a client reading commands from in and printing results to
// out.
func NewApp(api adapter.BlogAPI, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	a := &App{api: api, in: in, out: out, logger: logger}
	a.commands = map[string]command{
		"register":  a.register,
		"login":     a.login,
		"external":  a.external,
		"logout":    a.logout,
		"me":        a.me,
		"blogs":     a.blogs,
		"blog":      a.blog,
		"post":      a.post,
		"edit":      a.edit,
		"delete":    a.delete,
		"comments":  a.comments,
		"comment":   a.comment,
		"uncomment": a.uncomment,
		"version":   a.version,
	}
	return a
}

// Run executes commands line by line. A failed command is reported and the
// loop continues; only reading errors end Run with an error.
func (a *App) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		if err := a.Execute(ctx, line); err != nil {
			a.logger.Debug().Err(err).Str("command", line).Msg("command failed")
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}

	return scanner.Err()
}

// Execute runs one command line and prints its result.
func (a *App) Execute(ctx context.Context, line string) error {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	if name == "help" {
		fmt.Fprintln(a.out, usage)
		return nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, name)
	}

	result, err := cmd(ctx, strings.TrimSpace(args))
	if err != nil {
		return err
	}

	return a.print(result)
}

func (a *App) print(v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(a.out, s)
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) register(ctx context.Context, args string) (any, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: register <username> <email> <password>", ErrUsage)
	}

	err := a.api.Register(ctx, models.RegisterRequest{Username: fields[0], Email: fields[1], Password: fields[2]})
	if err != nil {
		return nil, err
	}
	return "registered, now login", nil
}

func (a *App) login(ctx context.Context, args string) (any, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: login <email> <password>", ErrUsage)
	}

	return a.api.Login(ctx, models.LoginRequest{Email: fields[0], Password: fields[1]})
}

func (a *App) external(ctx context.Context, args string) (any, error) {
	if args == "" {
		return nil, fmt.Errorf("%w: external <assertion>", ErrUsage)
	}

	return a.api.ExternalSignIn(ctx, args)
}

func (a *App) logout(ctx context.Context, _ string) (any, error) {
	if err := a.api.Logout(ctx); err != nil {
		return nil, err
	}
	return "logged out", nil
}

func (a *App) me(ctx context.Context, _ string) (any, error) {
	user, err := a.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return "not logged in", nil
	}
	return user, nil
}

func (a *App) blogs(ctx context.Context, args string) (any, error) {
	return a.api.ListBlogs(ctx, models.BlogQuery{Search: args})
}

func (a *App) blog(ctx context.Context, args string) (any, error) {
	id, err := parseID(args)
	if err != nil {
		return nil, err
	}
	return a.api.GetBlog(ctx, id)
}

func (a *App) post(ctx context.Context, args string) (any, error) {
	title, content, ok := strings.Cut(args, "|")
	if !ok {
		return nil, fmt.Errorf("%w: post <title> | <content>", ErrUsage)
	}

	return a.api.CreateBlog(ctx, models.BlogInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	})
}

func (a *App) edit(ctx context.Context, args string) (any, error) {
	rawID, rest, _ := strings.Cut(args, " ")
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	title, content, ok := strings.Cut(rest, "|")
	if !ok {
		return nil, fmt.Errorf("%w: edit <id> <title> | <content>", ErrUsage)
	}

	var update models.BlogUpdate
	if t := strings.TrimSpace(title); t != "" {
		update.Title = &t
	}
	if c := strings.TrimSpace(content); c != "" {
		update.Content = &c
	}

	return a.api.UpdateBlog(ctx, id, update)
}

func (a *App) delete(ctx context.Context, args string) (any, error) {
	id, err := parseID(args)
	if err != nil {
		return nil, err
	}
	if err = a.api.DeleteBlog(ctx, id); err != nil {
		return nil, err
	}
	return "blog deleted", nil
}

func (a *App) comments(ctx context.Context, args string) (any, error) {
	id, err := parseID(args)
	if err != nil {
		return nil, err
	}
	return a.api.ListComments(ctx, id)
}

func (a *App) comment(ctx context.Context, args string) (any, error) {
	rawID, content, _ := strings.Cut(args, " ")
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return a.api.CreateComment(ctx, id, models.CommentInput{Content: strings.TrimSpace(content)})
}

func (a *App) uncomment(ctx context.Context, args string) (any, error) {
	id, err := parseID(args)
	if err != nil {
		return nil, err
	}
	if err = a.api.DeleteComment(ctx, id); err != nil {
		return nil, err
	}
	return "comment deleted", nil
}

func (a *App) version(ctx context.Context, _ string) (any, error) {
	return a.api.Version(ctx)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", ErrUsage, raw)
	}
	return id, nil
}
