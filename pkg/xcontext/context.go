package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/yatube-lab/backend/config"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/logger"
	"github.com/yatube-lab/backend/pkg/session"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTxKey          struct{}
	snowflakeKey     struct{}
	tokenEngineKey   struct{}
	sessionStoreKey  struct{}
	requestUserIDKey struct{}
	requestNameKey   struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
	responseKey      struct{}
	errorKey         struct{}
	startTimeKey     struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg := ctx.Value(configsKey{})
	if cfg == nil {
		return config.Configs{}
	}

	return cfg.(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l := ctx.Value(loggerKey{})
	if l == nil {
		return logger.NewLogger(logger.SILENCE)
	}

	return l.(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the database transaction if it is started by WithDBTransaction.
// Otherwise, it returns the normal database connection.
func DB(ctx context.Context) *gorm.DB {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		return tx.(*gorm.DB).WithContext(ctx)
	}

	db := ctx.Value(dbKey{})
	if db == nil {
		return nil
	}

	return db.(*gorm.DB).WithContext(ctx)
}

func WithDBTransaction(ctx context.Context) context.Context {
	if ctx.Value(dbTxKey{}) != nil {
		return ctx
	}

	return context.WithValue(ctx, dbTxKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		tx.(*gorm.DB).Commit()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx := ctx.Value(dbTxKey{}); tx != nil {
		// Rollback after commit returns sql.ErrTxDone, ignore it.
		tx.(*gorm.DB).Rollback()
	}

	return context.WithValue(ctx, dbTxKey{}, nil)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithSessionStore(ctx context.Context, store *session.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) *session.Store {
	return ctx.Value(sessionStoreKey{}).(*session.Store)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the id of the authenticated user, or an empty string
// for anonymous requests.
func RequestUserID(ctx context.Context) string {
	id := ctx.Value(requestUserIDKey{})
	if id == nil {
		return ""
	}

	return id.(string)
}

func WithRequestUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, requestNameKey{}, username)
}

func RequestUsername(ctx context.Context) string {
	name := ctx.Value(requestNameKey{})
	if name == nil {
		return ""
	}

	return name.(string)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r := ctx.Value(httpRequestKey{})
	if r == nil {
		return nil
	}

	return r.(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w := ctx.Value(httpWriterKey{})
	if w == nil {
		return nil
	}

	return w.(http.ResponseWriter)
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err := ctx.Value(errorKey{})
	if err == nil {
		return nil
	}

	return err.(error)
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	t := ctx.Value(startTimeKey{})
	if t == nil {
		return time.Time{}
	}

	return t.(time.Time)
}
