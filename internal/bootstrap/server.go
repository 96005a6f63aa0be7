package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	accountapp "github.com/pipelinecrm/crm-server/internal/application/account"
	articleapp "github.com/pipelinecrm/crm-server/internal/application/article"
	contactapp "github.com/pipelinecrm/crm-server/internal/application/contact"
	"github.com/pipelinecrm/crm-server/internal/config"
	"github.com/pipelinecrm/crm-server/internal/domain/storage"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/repository"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/session"
	httpecho "github.com/pipelinecrm/crm-server/internal/interfaces/http/echo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func NewHTTPServer(cfg *config.Config, db *gorm.DB, pool *pgxpool.Pool, blobs storage.BlobStore) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.Validator = httpecho.NewValidator()

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(fmt.Sprintf("%dB", cfg.Import.UploadMaxBytes)))
	server.Use(requestLogger())

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)

	contactRepo := repository.NewContactRepository(db)
	bulkInserter := repository.NewContactBulkInsertRepository(pool)
	articleRepo := repository.NewArticleRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	listContacts := contactapp.NewListContacts(contactRepo)
	previewImport := contactapp.NewPreviewContactImport(contactRepo, nil)
	contactHandler := httpecho.NewContactHandler(
		listContacts,
		contactapp.NewBoardColumns(listContacts),
		contactapp.NewGetContact(contactRepo),
		contactapp.NewCreateContact(contactRepo, nil),
		contactapp.NewUpdateContact(contactRepo),
		contactapp.NewDeleteContact(contactRepo),
		contactapp.NewMoveContactStage(contactRepo),
	)
	importHandler := httpecho.NewImportHandler(
		previewImport,
		contactapp.NewConfirmContactImport(previewImport, bulkInserter),
		contactapp.NewExportContacts(contactRepo, nil),
	)

	slugs := articleapp.NewSlugGenerator(articleRepo, cfg.Slug.MaxAttempts)
	articleHandler := httpecho.NewArticleHandler(
		articleapp.NewListArticles(articleRepo),
		articleapp.NewGetArticle(articleRepo),
		articleapp.NewSaveArticle(articleRepo, slugs, nil),
		articleapp.NewDeleteArticle(articleRepo),
		articleapp.NewUploadCoverImage(blobs),
		slugs,
	)

	getProfile := accountapp.NewGetProfile(profileRepo, companyRepo, nil)
	updateProfile := accountapp.NewUpdateProfile(profileRepo)
	hasher := session.BcryptHasher{}
	accountHandler := httpecho.NewAccountHandler(httpecho.AccountHandlerDeps{
		Signup:        accountapp.NewSignup(userRepo, profileRepo, companyRepo, hasher, nil),
		Login:         accountapp.NewLogin(userRepo, getProfile, hasher, sessions),
		GetProfile:    getProfile,
		UpdateProfile: updateProfile,
		UpdateCompany: accountapp.NewUpdateCompany(companyRepo),
		UploadAvatar:  accountapp.NewUploadAvatar(blobs, updateProfile),
		SecureCookie:  cfg.Session.CookieSecure,
	})

	httpecho.RegisterRoutes(server, httpecho.Handlers{
		Account: accountHandler,
		Contact: contactHandler,
		Import:  importHandler,
		Article: articleHandler,
	}, sessions)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
