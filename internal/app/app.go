package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/ticket"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/metinatakli/cinema-tickets/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "cinema-tickets"

var (
	version = vcs.Version()
)

type Application struct {
	config  Config
	logger  *slog.Logger
	redis   redis.UniversalClient
	tickets *ticket.Service
}

type Config struct {
	Env              string
	OtelCollectorUrl string
	AccountID        int64
	Tickets          string
	Redis            RedisConfig
	Stripe           StripeConfig
}

type RedisConfig struct {
	URL          string
	Stream       string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	Currency      string
	PaymentMethod string
}

func Run() error {
	var cfg Config

	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	flag.Int64Var(&cfg.AccountID, "account", 0, "Account ID making the purchase")
	flag.StringVar(&cfg.Tickets, "tickets", "", "Tickets to purchase, e.g. ADULT=2,CHILD=1,INFANT=1")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis address of the seat reservation system")
	flag.StringVar(&cfg.Redis.Stream, "redis-stream", reservation.DefaultStream, "Redis stream receiving seat reservations")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 10, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 5, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	flag.StringVar(&cfg.Stripe.Currency, "stripe-currency", string(stripe.CurrencyGBP), "Currency ticket prices are charged in")
	flag.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", "pm_card_visa", "Stripe payment method to charge")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	textHandler := slog.NewTextHandler(os.Stdout, nil)

	app := &Application{
		config: cfg,
		logger: slog.New(textHandler),
	}

	shutdownTelemetry, err := app.InitTelemetry(ctx)
	if err != nil {
		app.logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(NewMultiHandler(textHandler, otelslog.NewHandler(serviceName)))
	}

	if cfg.Redis.URL != "" {
		redisClient, err := NewRedisClient(ctx, cfg)
		if err != nil {
			app.logger.Error("failed to connect to redis", "addr", cfg.Redis.URL, "error", err)
			return err
		}
		defer redisClient.Close()

		app.redis = redisClient
	}

	app.tickets = ticket.NewService(
		newPaymentService(cfg, app.logger),
		newSeatReservationService(app.redis, cfg, app.logger),
		appvalidator.NewValidator(),
		app.logger,
	)

	return app.purchase(ctx)
}

func (app *Application) purchase(ctx context.Context) error {
	requests, err := ParseTickets(app.config.Tickets)
	if err != nil {
		app.logger.Error("failed to parse tickets", "tickets", app.config.Tickets, "error", err)
		return err
	}

	app.logger.Info("purchasing tickets", "account_id", app.config.AccountID, "env", app.config.Env, "version", version)

	err = app.tickets.PurchaseTickets(ctx, app.config.AccountID, requests...)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPurchase) {
			return err
		}

		app.logger.Error("ticket purchase failed", "account_id", app.config.AccountID, "error", err)
		return err
	}

	return nil
}

func newPaymentService(cfg Config, logger *slog.Logger) domain.TicketPaymentService {
	if cfg.Stripe.SecretKey == "" {
		logger.Warn("stripe key not set, payments will not be charged")
		return payment.NewNoopPaymentService(logger)
	}

	stripe.Key = cfg.Stripe.SecretKey

	return payment.NewStripePaymentService(cfg.Stripe.Currency, cfg.Stripe.PaymentMethod, logger)
}

func newSeatReservationService(client redis.UniversalClient, cfg Config, logger *slog.Logger) domain.SeatReservationService {
	if client == nil {
		logger.Warn("redis url not set, seats will not be reserved")
		return reservation.NewNoopSeatReservationService(logger)
	}

	return reservation.NewRedisSeatReservationService(client, cfg.Redis.Stream, logger)
}

func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to instrument redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}
