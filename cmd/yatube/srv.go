package main

import (
	"context"
	"log"
	"net/http"
	"path"

	"github.com/bwmarrin/snowflake"
	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/config"
	"github.com/yatube-lab/backend/internal/domain"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/logger"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/render"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/session"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"github.com/yatube-lab/backend/pkg/xredis"
	"github.com/yatube-lab/backend/web"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	storage      storage.Storage
	mediaHandler http.Handler
	cache        pagecache.Cache
	renderer     *render.Renderer

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	fileRepo    repository.FileRepository

	postDomain    domain.PostDomain
	commentDomain domain.CommentDomain
	followDomain  domain.FollowDomain
	authDomain    domain.AuthDomain
	aboutDomain   domain.AboutDomain

	router *router.Router
	server *http.Server
}

// loadBase prepares the context shared by every command.
func (s *srv) loadBase(ct *cli.Context) {
	s.loadConfig()
	if file := ct.String("config"); file != "" {
		s.loadConfigFile(file)
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.loadLogger()
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(s.configs.LogLevel)))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := s.configs.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(), // data source name
			DefaultStringSize:         256,                    // default size for string fields
			DisableDatetimePrecision:  true,                   // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,                   // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,                   // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false,                  // auto configure based on currently MySQL version
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.SqlitePath)
	default:
		log.Fatalf("Unsupported database driver %s", cfg.Driver)
	}

	logLevel := gormlogger.Silent
	if logger.ParseLevel(cfg.LogLevel) <= logger.INFO {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadAuth() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Cannot create snowflake node: %v", err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
	s.ctx = xcontext.WithSessionStore(s.ctx,
		session.NewCookieStore(s.configs.Session.Name, []byte(s.configs.Session.Secret)))
}

func (s *srv) loadStorage() {
	switch s.configs.Storage.Backend {
	case "s3":
		s3Storage, err := storage.NewS3Storage(s.configs.Storage.S3)
		if err != nil {
			log.Fatalf("Cannot connect to s3: %v", err)
		}
		s.storage = s3Storage

	case "local":
		localStorage := storage.NewLocalStorage(s.configs.Storage.Local)
		s.storage = localStorage
		s.mediaHandler = http.StripPrefix(
			path.Clean(s.configs.Storage.Local.URLPrefix)+"/",
			http.FileServer(http.Dir(localStorage.Root())),
		)

	default:
		log.Fatalf("Unsupported storage backend %s", s.configs.Storage.Backend)
	}
}

func (s *srv) loadCache() {
	switch s.configs.Cache.Backend {
	case "memory":
		s.cache = pagecache.NewMemoryCache()

	case "redis":
		client, err := xredis.NewClient(s.ctx)
		if err != nil {
			log.Fatalf("Cannot connect to redis: %v", err)
		}
		s.cache = pagecache.NewRedisCache(client)

	default:
		log.Fatalf("Unsupported cache backend %s", s.configs.Cache.Backend)
	}
}

func (s *srv) loadRenderer() {
	var err error
	s.renderer, err = render.New(web.Templates())
	if err != nil {
		log.Fatalf("Cannot parse templates: %v", err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.groupRepo = repository.NewGroupRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.followRepo = repository.NewFollowRepository()
	s.fileRepo = repository.NewFileRepository()
}

func (s *srv) loadDomains() {
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo)
	s.postDomain = domain.NewPostDomain(
		s.postRepo, s.groupRepo, s.userRepo, s.commentRepo, s.followRepo, s.fileRepo, s.storage,
		s.followDomain)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.postRepo)
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.aboutDomain = domain.NewAboutDomain()
}
