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

package service

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
)

const defaultResolveTimeout = 300 * time.Millisecond

//go:generate mockgen -source=./matcher.go -package=vouchermocks -destination=../../mocks/matcher.mock.go -typed RestrictionMatcher
type RestrictionMatcher interface {
	// Matches 判断订单商品是否满足优惠券的限制条件,
	// 商品信息解析失败时按不适用处理,绝不放水
	Matches(ctx context.Context, v domain.Voucher, productSNs []string) bool
}

type restrictionMatcher struct {
	productSvc product.Service
	timeout    time.Duration
	logger     *elog.Component
}

func NewRestrictionMatcher(productSvc product.Service, timeout time.Duration) RestrictionMatcher {
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &restrictionMatcher{
		productSvc: productSvc,
		timeout:    timeout,
		logger:     elog.DefaultLogger,
	}
}

// 三组限制条件之间是 OR 关系,命中任意一组即适用
func (m *restrictionMatcher) Matches(ctx context.Context, v domain.Voucher, productSNs []string) bool {
	if !v.HasRestrictions() {
		return true
	}
	for _, sn := range productSNs {
		if slice.Contains(v.ProductRestrictions, sn) {
			return true
		}
	}
	// 类目和卖家需要调商品服务解析
	if len(v.CategoryRestrictions) == 0 && len(v.SellerRestrictions) == 0 {
		return false
	}
	if len(productSNs) == 0 {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	products, err := m.productSvc.FindInfoBySNs(ctx, productSNs)
	if err != nil {
		m.logger.Error("解析商品信息失败,按不适用处理",
			elog.FieldErr(err),
			elog.String("code", v.Code))
		return false
	}
	for _, p := range products {
		if slice.Contains(v.SellerRestrictions, p.SellerSN) {
			return true
		}
		for _, c := range p.Categories {
			if slice.Contains(v.CategoryRestrictions, c) {
				return true
			}
		}
	}
	return false
}
