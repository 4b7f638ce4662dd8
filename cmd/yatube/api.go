package main

import (
	"log"
	"net/http"

	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/internal/middleware"
	"github.com/yatube-lab/backend/pkg/prometheus"
	"github.com/yatube-lab/backend/pkg/router"
)

func (s *srv) startApi(ct *cli.Context) error {
	s.loadBase(ct)
	s.loadDatabase()
	s.loadAuth()
	s.loadStorage()
	s.loadCache()
	s.loadRenderer()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	s.server = &http.Server{
		Addr:    cfg.Address(),
		Handler: middleware.AllowCors(cfg, s.router.Handler()),
	}

	log.Printf("Starting server on %s\n", cfg.Address())
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = s.server.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = s.server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Handle("/metrics", prometheus.NewHandler())
	if s.mediaHandler != nil {
		s.router.PathPrefix(s.configs.Storage.Local.URLPrefix, s.mediaHandler)
	}

	s.router.AddCloser(middleware.Render(s.renderer), middleware.Logger(), middleware.Prometheus())
	s.router.Before(middleware.WithStartTime(), middleware.ImportUser())
	s.router.After(middleware.HandleSaveSession(), middleware.HandleRedirect())

	// Index page is served from the page cache.
	indexRouter := s.router.Branch()
	indexGuard := middleware.NewCacheGuard(s.cache, s.renderer, "index_page")
	indexRouter.Before(indexGuard.Lookup())
	indexRouter.After(indexGuard.Store())
	{
		router.GET(indexRouter, "/", s.postDomain.Index)
	}

	// Public pages.
	{
		router.GET(s.router, "/group/{slug}/", s.postDomain.GroupList)
		router.GET(s.router, "/profile/{username}/", s.postDomain.Profile)
		router.GET(s.router, "/posts/{post_id:[0-9]+}/", s.postDomain.Detail)

		router.GET(s.router, "/about/author/", s.aboutDomain.Author)
		router.GET(s.router, "/about/tech/", s.aboutDomain.Tech)

		router.GET(s.router, "/auth/signup/", s.authDomain.SignupForm)
		router.POST(s.router, "/auth/signup/", s.authDomain.Signup)
		router.GET(s.router, "/auth/login/", s.authDomain.LoginForm)
		router.POST(s.router, "/auth/login/", s.authDomain.Login)
		router.GET(s.router, "/auth/logout/", s.authDomain.Logout)
		router.GET(s.router, "/auth/password_reset/", s.authDomain.PasswordResetForm)
		router.POST(s.router, "/auth/password_reset/", s.authDomain.PasswordReset)
		router.GET(s.router, "/auth/password_reset/done/", s.authDomain.PasswordResetDone)
	}

	// These following pages need a logged in user.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/follow/", s.postDomain.FollowIndex)
		router.GET(authRouter, "/create/", s.postDomain.CreateForm)
		router.POST(authRouter, "/create/", s.postDomain.Create)
		router.GET(authRouter, "/posts/{post_id:[0-9]+}/edit/", s.postDomain.EditForm)
		router.POST(authRouter, "/posts/{post_id:[0-9]+}/edit/", s.postDomain.Edit)
		router.POST(authRouter, "/posts/{post_id:[0-9]+}/comment/", s.commentDomain.Create)

		router.GET(authRouter, "/profile/{username}/follow/", s.followDomain.Follow)
		router.GET(authRouter, "/profile/{username}/unfollow/", s.followDomain.Unfollow)

		router.GET(authRouter, "/auth/password_change/", s.authDomain.PasswordChangeForm)
		router.POST(authRouter, "/auth/password_change/", s.authDomain.PasswordChange)
		router.GET(authRouter, "/auth/password_change/done/", s.authDomain.PasswordChangeDone)
	}

	s.router.NotFound()
}
