// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package voucher

import (
	"sync"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
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
)

func InitModule(db *egorm.Component, ec ecache.Cache, q mq.MQ, pm *product.Module) (*Module, error) {
	wire.Build(
		initVoucherDAO,
		dao.NewGORMVoucherVaultDAO,
		dao.NewGORMVoucherUsageDAO,
		initVoucherCache,
		repository.NewRepository,
		wire.FieldsOf(new(*product.Module), "Svc"),
		initRestrictionMatcher,
		sequencenumber.NewGenerator,
		eventKeyGenerator,
		producer.NewRedemptionEventProducer,
		service.NewService,
		service.NewAdminService,
		web.NewHandler,
		web.NewAdminHandler,
		initExpireClaimsJob,
		wire.Struct(new(Module), "*"),
	)
	return nil, nil
}

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
