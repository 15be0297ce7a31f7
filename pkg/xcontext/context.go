package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/questx-lab/questboard/config"
	"github.com/questx-lab/questboard/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	httpRequestKey struct{}
	clientIPKey    struct{}
	startTimeKey   struct{}
	errorKey       struct{}
)

type dbTransaction struct {
	tx       *gorm.DB
	finished bool
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, _ := ctx.Value(configsKey{}).(config.Configs)
	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// Logger returns the logger stored in ctx. A context without logger gets a
// silent one so that library code never needs a nil check.
func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.SILENCE)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if WithDBTransaction was called on ctx,
// otherwise the database handle.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTxKey{}).(*dbTransaction); ok && !t.finished {
		return t.tx
	}

	db, _ := ctx.Value(dbKey{}).(*gorm.DB)
	return db
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) error {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.finished {
		return nil
	}

	t.finished = true
	return t.tx.Commit().Error
}

// WithRollbackDBTransaction is safe to defer right after WithDBTransaction, it
// does nothing when the transaction was committed.
func WithRollbackDBTransaction(ctx context.Context) {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.finished {
		return
	}

	t.finished = true
	t.tx.Rollback()
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, _ := ctx.Value(httpRequestKey{}).(*http.Request)
	return r
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}
