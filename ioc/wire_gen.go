// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package ioc

import (
	"github.com/google/wire"
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/voucher"
)

// Injectors from wire.go:

func InitApp() (*App, error) {
	cmdable := InitRedis()
	provider := InitSession(cmdable)
	db := InitDB()
	cache := InitCache(cmdable)
	mq := InitMQ()
	module, err := product.InitModule(db)
	if err != nil {
		return nil, err
	}
	voucherModule, err := voucher.InitModule(db, cache, mq, module)
	if err != nil {
		return nil, err
	}
	handler := voucherModule.Hdl
	adminHandler := voucherModule.AdminHdl
	component := initGinxServer(provider, handler, adminHandler)
	expireClaimsJob := voucherModule.ExpireClaimsJob
	v := initCronJobs(expireClaimsJob)
	app := &App{
		Web:   component,
		Crons: v,
	}
	return app, nil
}

// wire.go:

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)
