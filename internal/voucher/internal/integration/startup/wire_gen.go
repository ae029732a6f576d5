// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package startup

import (
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/test/ioc"
	"github.com/retrade/voucher/internal/voucher"
)

// Injectors from wire.go:

func InitModule(pm *product.Module) (*voucher.Module, error) {
	db := testioc.InitDB()
	cache := testioc.InitCache()
	mq := testioc.InitMQ()
	module, err := voucher.InitModule(db, cache, mq, pm)
	if err != nil {
		return nil, err
	}
	return module, nil
}
