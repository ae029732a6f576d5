// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package voucher

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/lithammer/shortuuid/v4"
	"github.com/retrade/voucher/internal/pkg/sequencenumber"
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/voucher/internal/event/producer"
	"github.com/retrade/voucher/internal/voucher/internal/job"
	"github.com/retrade/voucher/internal/voucher/internal/repository"
	"github.com/retrade/voucher/internal/voucher/internal/repository/cache"
	"github.com/retrade/voucher/internal/voucher/internal/repository/dao"
	"github.com/retrade/voucher/internal/voucher/internal/service"
	"github.com/retrade/voucher/internal/voucher/internal/web"
	"gorm.io/gorm"
	"sync"
	"time"
)

// Injectors from wire.go:

func InitModule(db *gorm.DB, ec ecache.Cache, q mq.MQ, pm *product.Module) (*Module, error) {
	voucherDAO := initVoucherDAO(db)
	voucherVaultDAO := dao.NewGORMVoucherVaultDAO(db)
	voucherUsageDAO := dao.NewGORMVoucherUsageDAO(db)
	voucherCache := initVoucherCache(ec)
	voucherRepository := repository.NewRepository(voucherDAO, voucherVaultDAO, voucherUsageDAO, voucherCache)
	serviceService := pm.Svc
	restrictionMatcher := initRestrictionMatcher(serviceService)
	generator := sequencenumber.NewGenerator()
	redemptionEventProducer, err := producer.NewRedemptionEventProducer(q)
	if err != nil {
		return nil, err
	}
	v := eventKeyGenerator()
	service2 := service.NewService(voucherRepository, restrictionMatcher, generator, redemptionEventProducer, v)
	adminService := service.NewAdminService(voucherRepository, generator)
	handler := web.NewHandler(service2)
	adminHandler := web.NewAdminHandler(adminService)
	expireClaimsJob := initExpireClaimsJob(service2)
	module := &Module{
		Svc:             service2,
		AdminSvc:        adminService,
		Hdl:             handler,
		AdminHdl:        adminHandler,
		ExpireClaimsJob: expireClaimsJob,
	}
	return module, nil
}

// wire.go:

var once = &sync.Once{}

func initVoucherDAO(db *egorm.Component) dao.VoucherDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewGORMVoucherDAO(db)
}

func initVoucherCache(ec ecache.Cache) cache.VoucherCache {
	expiration := econf.GetDuration("voucher.cache.expiration")
	if expiration <= 0 {
		expiration = 10 * time.Minute
	}
	return cache.NewVoucherECache(ec, expiration)
}

func initRestrictionMatcher(svc product.Service) service.RestrictionMatcher {
	return service.NewRestrictionMatcher(svc, econf.GetDuration("voucher.matcher.timeout"))
}

func initExpireClaimsJob(svc service.Service) *job.ExpireClaimsJob {
	limit := econf.GetInt("voucher.job.limit")
	if limit <= 0 {
		limit = 100
	}
	timeout := econf.GetDuration("voucher.job.timeout")
	if timeout <= 0 {
		timeout = time.Minute
	}
	return job.NewExpireClaimsJob(svc, limit, timeout)
}

func eventKeyGenerator() func() string {
	return shortuuid.New
}
