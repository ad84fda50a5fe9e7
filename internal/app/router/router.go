package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	userhandler "user_backend/internal/feature/user/transport/handler"
	"user_backend/internal/platform/http/handler"
	"user_backend/internal/platform/http/middleware"
)

// NewRouter はミドルウェアとユーザーAPIのルートを登録したgin.Engineを生成します。
func NewRouter(users *userhandler.UserHandler, db handler.Pinger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// アクセスログ → パニック復旧 → CORS の順に適用
	r.Use(middleware.RequestLogger(), userhandler.Recovery(), cors.Default())

	// 導通確認用
	health := handler.Health(db)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	u := r.Group("/users")
	{
		u.POST("/create", users.Create)
		u.PUT("/update", users.Update)
		u.DELETE("/delete", users.Delete)
		u.GET("/preview", users.Preview)
		u.GET("/all", users.All)
	}

	r.NoRoute(userhandler.NoRoute)
	r.NoMethod(userhandler.NoMethod)

	return r
}
