// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存サービス（Redis、DBなど）の疎通確認です。
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// checkTimeout は各Checkに与える時間の上限です。
const checkTimeout = 2 * time.Second

// Health は /healthz エンドポイントのハンドラーを返します。
// すべてのChecksが成功すれば200、1つでも失敗すれば503を返します。
// HEADは本文なし、OPTIONSは204です。キャッシュは常に無効化します。
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		failed := map[string]string{}
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := chk.Probe(ctx)
			cancel()
			if err != nil {
				slog.Warn("health check failed", "check", chk.Name, "error", err)
				failed[chk.Name] = err.Error()
			}
		}

		status := http.StatusOK
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if len(failed) > 0 {
			c.JSON(status, gin.H{"status": "degraded", "failed": failed})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}
