package echo

import e "github.com/labstack/echo/v4"

type Handlers struct {
	Account *AccountHandler
	Contact *ContactHandler
	Import  *ImportHandler
	Article *ArticleHandler
}

func RegisterRoutes(server *e.Echo, h Handlers, sessions SessionParser) {
	if server.Validator == nil {
		server.Validator = NewValidator()
	}

	v1 := server.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", h.Account.Signup)
	auth.POST("/login", h.Account.Login)
	auth.POST("/logout", h.Account.Logout)

	private := v1.Group("", RequireSession(sessions))

	private.GET("/profile", h.Account.Profile)
	private.PATCH("/profile", h.Account.UpdateProfile)
	private.POST("/profile/avatar", h.Account.UploadAvatar)
	private.PATCH("/company", h.Account.UpdateCompany)

	private.GET("/contacts", h.Contact.List)
	private.GET("/contacts/board", h.Contact.Board)
	private.POST("/contacts", h.Contact.Create)
	private.POST("/contacts/import/preview", h.Import.Preview)
	private.POST("/contacts/import", h.Import.Confirm)
	private.GET("/contacts/import/template", h.Import.Template)
	private.GET("/contacts/export", h.Import.Export)
	private.GET("/contacts/:id", h.Contact.Get)
	private.PUT("/contacts/:id", h.Contact.Update)
	private.DELETE("/contacts/:id", h.Contact.Delete)
	private.PATCH("/contacts/:id/stage", h.Contact.MoveStage)

	private.GET("/articles", h.Article.List)
	private.POST("/articles", h.Article.Create)
	private.GET("/articles/slug", h.Article.SlugPreview)
	private.POST("/articles/cover", h.Article.UploadCover)
	private.GET("/articles/:id", h.Article.Get)
	private.PUT("/articles/:id", h.Article.Update)
	private.DELETE("/articles/:id", h.Article.Delete)
}
