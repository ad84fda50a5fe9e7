// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger は依存先の疎通確認を定義します。*sql.DBが満たします。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// dbがnilでなければGETで疎通を確認し、失敗時は503を返します。
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			if db != nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
				defer cancel()
				if err := db.PingContext(ctx); err != nil {
					slog.Error("health check failed", "error", err)
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
					return
				}
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	}
}
