package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/hireboard/internal/client/board"
	"github.com/dmitrijs2005/hireboard/internal/client/client"
	"github.com/dmitrijs2005/hireboard/internal/client/config"
	"github.com/dmitrijs2005/hireboard/internal/logging"
)

// localJobTitle names the job created in a fresh local database.
const localJobTitle = "Local board"

type gateway interface {
	board.Gateway
	Close() error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	gateway gateway
	store   *board.Store
	drag    *board.DragController
	form    board.AddForm
	query   string
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the gateway selected by c.Mode and builds the board store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewText(os.Stderr, c.LogLevel)

	gw, err := openGateway(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return newApp(c, gw, logger, os.Stdin, os.Stdout), nil
}

func openGateway(ctx context.Context, c *config.Config, logger logging.Logger) (gateway, error) {
	if c.Mode == config.ModeLocal {
		db, err := client.InitDatabase(ctx, c.LocalDBPath)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		lg := client.NewLocalGateway(db, c.FilesDir)
		if err := lg.EnsureJob(ctx, c.JobID, localJobTitle); err != nil {
			_ = lg.Close()
			return nil, err
		}
		return lg, nil
	}

	gc, err := client.NewGRPCClient(c.ServerEndpointAddr, c.AccessToken, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	if err := gc.Ping(ctx); err != nil {
		logger.Warn(ctx, "server not reachable", "address", c.ServerEndpointAddr, "error", err)
	}
	return gc, nil
}

func newApp(c *config.Config, gw gateway, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		logger:  logger,
		gateway: gw,
		reader:  bufio.NewReader(in),
		out:     out,
	}

	opts := []board.Option{
		board.WithLogger(logger),
		board.WithNotifier(board.NotifierFunc(a.alert)),
	}
	if c.Rollback {
		opts = append(opts, board.WithRollback())
	}
	if c.ReconcileInterval > 0 {
		opts = append(opts, board.WithReconcile(c.ReconcileInterval))
	}

	a.store = board.NewStore(gw, opts...)
	a.drag = board.NewDragController(a.store)
	return a
}

// alert is the blocking notification of the board: printed at once, before
// the command returns.
func (a *App) alert(_ context.Context, msg string) {
	fmt.Fprintln(a.out, "!!", msg)
}

// Run loads the board and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		a.store.Wait()
		if err := a.gateway.Close(); err != nil {
			a.logger.Error(ctx, "gateway close failed", "error", err)
		}
	}()

	a.store.Load(ctx, a.config.JobID)

	go a.store.Reconcile(ctx)

	fmt.Fprintln(a.out, "Welcome to HireBoard CLI (type 'help' for commands)")
	_ = a.Board(ctx, nil)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) getStatus() string {
	s := fmt.Sprintf("job %d %s", a.store.JobID(), a.config.Mode)
	if e := a.store.Editor(); e != nil {
		s += fmt.Sprintf(" editing #%d", e.ID())
	}
	if a.query != "" {
		s += fmt.Sprintf(" search %q", a.query)
	}
	return "(" + s + ")"
}
