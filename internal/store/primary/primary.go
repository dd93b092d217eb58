package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"

	"textlens/internal/models"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns int32

	// Logger receives every statement at debug level when set.
	Logger *logrus.Logger
}

// StoreImpl implements store.AnalysisStore using PostgreSQL.
type StoreImpl struct {
	db *pgxpool.Pool
}

// NewPrimaryStore creates a PostgreSQL store and verifies connectivity.
func NewPrimaryStore(ctx context.Context, dsn string, opts Options) (*StoreImpl, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if opts.Logger != nil {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   queryLogger(opts.Logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &StoreImpl{db: dbpool}, nil
}

// Ping checks the database connection.
func (s *StoreImpl) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection pool.
func (s *StoreImpl) Close() {
	s.db.Close()
}

// queryLogger routes pgx trace output to logrus.
func queryLogger(l *logrus.Logger) tracelog.LoggerFunc {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		entry := l.WithFields(logrus.Fields(data)).WithField("component", "pgx")
		switch level {
		case tracelog.LogLevelError:
			entry.Error(msg)
		case tracelog.LogLevelWarn:
			entry.Warn(msg)
		case tracelog.LogLevelInfo:
			entry.Info(msg)
		default:
			entry.Debug(msg)
		}
	}
}

// scanAnalysis scans one text_analysis row in analysisColumns order.
func scanAnalysis(row pgx.Row, dest *models.AnalysisRecord) error {
	return row.Scan(
		&dest.ID,
		&dest.Text,
		&dest.EmotionLabel,
		&dest.EmotionConfidence,
		&dest.GibberishLabel,
		&dest.GibberishScore,
	)
}
