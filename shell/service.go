package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/misteriaud/passeri"
	"github.com/misteriaud/passeri/client"
	"github.com/misteriaud/passeri/controller"
	"github.com/misteriaud/passeri/identifier"
	"github.com/misteriaud/passeri/implementer"
	"github.com/misteriaud/passeri/internal/logging"
	"github.com/misteriaud/passeri/model"
	"github.com/misteriaud/passeri/registry"
	"github.com/misteriaud/passeri/schema"
	"github.com/misteriaud/passeri/server"
)

const prompt = "passeri> "

// Service is the interactive console state: a controller plus one pending
// draft per kind.
type Service struct {
	controller *controller.Controller
	drafts     map[model.Kind]*controller.Draft
	renderer   *Renderer
	out        io.Writer
	logger     *slog.Logger
}

// Execute runs one console line. It reports quit when the user asked to leave.
func (s *Service) Execute(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	command, args := strings.ToLower(fields[0]), fields[1:]
	switch command {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		_, err = io.WriteString(s.out, usage)
	case "list", "ls":
		err = s.list(args)
	case "address", "label":
		err = s.edit(command, args)
	case "create", "new":
		err = s.create(ctx, args)
	case "activate", "start", "listen", "receive":
		err = s.activate(ctx, args)
	case "remove", "rm":
		err = s.remove(ctx, args)
	default:
		err = fmt.Errorf("unknown command %q, type help", command)
	}
	return false, err
}

// Serve reads commands from in until EOF, quit or ctx is done. Command errors
// are printed and do not stop the console.
func (s *Service) Serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		_, _ = io.WriteString(s.out, prompt)
		if !scanner.Scan() {
			_, _ = io.WriteString(s.out, "\n")
			return scanner.Err()
		}
		quit, err := s.Execute(ctx, scanner.Text())
		if err != nil {
			s.renderer.Error(s.out, err)
		}
		if quit || ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Service) list(args []string) error {
	kinds := model.Kinds
	if len(args) > 0 {
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []model.Kind{kind}
	}
	for _, kind := range kinds {
		s.renderer.Bridges(s.out, kind, s.controller.List(kind))
		s.renderer.Draft(s.out, kind, s.drafts[kind])
	}
	return nil
}

func (s *Service) edit(field string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %v <sender|receiver> [value]", field)
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	value := strings.Join(args[1:], " ")
	draft := s.drafts[kind]
	if field == "address" {
		draft.Address = value
	} else {
		draft.Label = value
	}
	s.renderer.Draft(s.out, kind, draft)
	return nil
}

// create submits the kind draft, optionally replacing its address and label first.
func (s *Service) create(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: create <sender|receiver> [address [label]]")
	}
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	draft := s.drafts[kind]
	if len(args) > 1 {
		draft.Address = args[1]
	}
	if len(args) > 2 {
		draft.Label = strings.Join(args[2:], " ")
	}
	bridge, err := s.controller.Submit(ctx, kind, draft)
	if err != nil {
		return err
	}
	s.renderer.Bridge(s.out, "created", bridge)
	return nil
}

func (s *Service) activate(ctx context.Context, args []string) error {
	bridge, err := s.lookup(args)
	if err != nil {
		return err
	}
	bridge, err = s.controller.Activate(ctx, bridge.Kind, bridge.ID)
	if err != nil {
		return err
	}
	s.renderer.Bridge(s.out, "activated", bridge)
	return nil
}

func (s *Service) remove(ctx context.Context, args []string) error {
	bridge, err := s.lookup(args)
	if err != nil {
		return err
	}
	bridge, err = s.controller.Remove(ctx, bridge.Kind, bridge.ID)
	if err != nil {
		return err
	}
	s.renderer.Bridge(s.out, "removed", bridge)
	return nil
}

// lookup resolves "<id>" or "<kind> <id>" against the registry.
func (s *Service) lookup(args []string) (model.Bridge, error) {
	switch len(args) {
	case 1:
		id, err := identifier.Parse(args[0])
		if err != nil {
			return model.Bridge{}, err
		}
		bridge, ok := s.controller.Lookup(id)
		if !ok {
			return model.Bridge{}, fmt.Errorf("no bridge %v", id)
		}
		return bridge, nil
	case 2:
		kind, err := model.ParseKind(args[0])
		if err != nil {
			return model.Bridge{}, err
		}
		id, err := identifier.Parse(args[1])
		if err != nil {
			return model.Bridge{}, err
		}
		return model.Bridge{ID: id, Kind: kind}, nil
	}
	return model.Bridge{}, fmt.Errorf("expected [kind] <id>")
}

// New connects to the backend described by options and builds the console.
// Diagnostics go to logs, console output to out.
func New(ctx context.Context, options *Options, out, logs io.Writer) (*Service, error) {
	options.ClientOptions.Init()
	logger := logging.New(logs, options.LogLevel, options.LogFormat)
	handler := client.NewHandler(client.WithHandlerLogger(logger))

	var commands controller.Commands
	if options.Memory {
		srv, err := server.New(server.WithNewImplementer(implementer.New().NewImplementer), server.WithLogger(logger), server.WithLoggingLevel(schema.LoggingLevelWarning))
		if err != nil {
			return nil, err
		}
		commands = client.New(srv.Loopback(ctx, handler), append(options.Options(), client.WithLogger(logger))...)
	} else {
		cli, err := passeri.NewClient(ctx, &options.ClientOptions, handler, client.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		commands = cli
	}
	ctrl := controller.New(commands, registry.New(),
		controller.WithLogger(logger),
		controller.WithReactivationPolicy(parsePolicy(options.Reactivation)))
	return NewService(ctrl, out, logger), nil
}

// NewService builds a console over an existing controller.
func NewService(ctrl *controller.Controller, out io.Writer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	ret := &Service{
		controller: ctrl,
		drafts:     make(map[model.Kind]*controller.Draft, len(model.Kinds)),
		renderer:   NewRenderer(out),
		out:        out,
		logger:     logger,
	}
	for _, kind := range model.Kinds {
		ret.drafts[kind] = &controller.Draft{}
	}
	return ret
}

func parsePolicy(text string) controller.ReactivationPolicy {
	switch text {
	case controller.ReactivateSkip.String():
		return controller.ReactivateSkip
	case controller.ReactivateReject.String():
		return controller.ReactivateReject
	}
	return controller.ReactivateForward
}

const usage = `commands:
  list [sender|receiver]                 show bridges and pending drafts
  address <kind> <ip:port>               set the draft address
  label <kind> <midi port>               set the draft label
  create <kind> [ip:port [midi port]]    create a bridge from the draft
  activate [kind] <id>                   start listening (sender) or receiving (receiver)
  remove [kind] <id>                     remove a bridge
  quit
`
