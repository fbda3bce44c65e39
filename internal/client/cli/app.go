package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/accounts"
	"github.com/dmitrijs2005/devmarket/internal/client/config"
	"github.com/dmitrijs2005/devmarket/internal/client/credentials"
	"github.com/dmitrijs2005/devmarket/internal/client/market"
	"github.com/dmitrijs2005/devmarket/internal/client/media"
	"github.com/dmitrijs2005/devmarket/internal/client/services"
	"github.com/dmitrijs2005/devmarket/internal/client/storage"
	"github.com/dmitrijs2005/devmarket/internal/client/transport"
	"github.com/dmitrijs2005/devmarket/internal/logging"
)

// accountsAPI is the part of accounts.Client the CLI calls directly.
type accountsAPI interface {
	Register(ctx context.Context, req accounts.RegisterRequest) (*accounts.RegisterResponse, error)
	Me(ctx context.Context) (*accounts.Profile, error)
	ListUsers(ctx context.Context) ([]accounts.AdminUser, error)
}

// marketAPI is the browsing and ordering part of market.Client.
type marketAPI interface {
	ListCategories(ctx context.Context) ([]market.Category, error)
	ListDeviceModels(ctx context.Context, categoryID int64) ([]market.DeviceModel, error)
	ListProducts(ctx context.Context, sellerID int64) ([]market.Product, error)
	GetProduct(ctx context.Context, id int64) (*market.Product, error)
	Valuate(ctx context.Context, req market.ValuationRequest) (*market.ValuationResponse, error)
	ListOrders(ctx context.Context) ([]market.Order, error)
	CreateTrade(ctx context.Context, productID int64) (*market.TradeResponse, error)
	ConfirmReceipt(ctx context.Context, orderID int64) (*market.ConfirmResponse, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	session  services.SessionService
	listing  services.ListingService
	accounts accountsAPI
	market   marketAPI

	reader *bufio.Reader
	out    io.Writer

	userName string
	loggedIn bool

	closers []func() error
}

// NewApp opens the local store and builds every client-side component from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, c.LogFormat, os.Stderr)

	db, err := storage.InitDatabase(ctx, c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	creds := credentials.NewKeyFallback(storage.NewSQLiteRepository(db), c.TokenKeys...)

	api, err := transport.New(transport.Options{
		BaseURL:     c.BaseURL,
		Timeout:     c.RequestTimeout,
		Credentials: creds,
		Logger:      log,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	source, err := newImageSource(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	accountsClient := accounts.New(api)
	marketClient := market.New(api)

	return &App{
		config:   c,
		log:      log,
		session:  services.NewSessionService(accountsClient, db, c.TokenKeys, log),
		listing:  services.NewListingService(marketClient, source, log),
		accounts: accountsClient,
		market:   marketClient,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closers:  []func() error{db.Close},
	}, nil
}

// newImageSource always reads local files; s3:// references are enabled when
// an S3 endpoint or access key is configured.
func newImageSource(ctx context.Context, c *config.Config) (media.Source, error) {
	router := &media.Router{File: media.FileSource{}}
	if c.S3BaseEndpoint == "" && c.S3AccessKey == "" {
		return router, nil
	}

	client, err := media.NewS3Client(ctx, media.S3Options{
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}
	router.S3 = media.NewS3Source(client)
	return router, nil
}

// Run restores the stored session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, titleStyle.Render("devmarket")+" (type 'help' for commands)")
	a.restoreSession(ctx)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if !a.loggedIn {
		return "guest"
	}
	if a.userName == "" {
		return "logged in"
	}
	return a.userName
}

// restoreSession picks up a token left by a previous run and refreshes it
// when it has expired.
func (a *App) restoreSession(ctx context.Context) {
	id, err := a.session.WhoAmI(ctx)
	if errors.Is(err, services.ErrNotLoggedIn) {
		return
	}
	if err != nil {
		// Opaque tokens under the legacy keys are still sent by the transport.
		a.log.Debug(ctx, "stored token has no readable claims", "error", err)
		ok, lerr := a.session.LoggedIn(ctx)
		if lerr != nil {
			a.log.Warn(ctx, "stored session is unreadable", "error", lerr)
			return
		}
		a.loggedIn = ok
		return
	}

	a.loggedIn = true
	a.userName = id.Username

	if id.Expired(time.Now()) {
		if err := a.session.Refresh(ctx); err != nil {
			a.log.Warn(ctx, "session expired and could not be refreshed", "error", err)
			fmt.Fprintln(a.out, hintStyle.Render("Your session has expired, please log in again."))
			a.loggedIn = false
			return
		}
		a.log.Debug(ctx, "expired access token refreshed")
	}
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}
