//go:build wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/voucher"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		product.InitModule,
		voucher.InitModule,
		wire.FieldsOf(new(*voucher.Module), "Hdl", "AdminHdl", "ExpireClaimsJob"),
		InitSession,
		initGinxServer,
		initCronJobs)
	return new(App), nil
}
