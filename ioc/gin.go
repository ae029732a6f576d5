package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/retrade/voucher/internal/pkg/middleware"
	"github.com/retrade/voucher/internal/voucher"
)

func initGinxServer(sp session.Provider,
	vhdl *voucher.Handler,
	vadmin *voucher.AdminHandler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	corsDomain := econf.GetString("cors.domain")
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			return corsDomain != "" && strings.Contains(origin, corsDomain)
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	vhdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	vhdl.PrivateRoutes(res.Engine)
	vadmin.PrivateRoutes(res.Engine)
	return res
}
