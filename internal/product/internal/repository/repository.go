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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"github.com/retrade/voucher/internal/product/internal/domain"
	"github.com/retrade/voucher/internal/product/internal/repository/dao"
)

type ProductRepository interface {
	FindBySN(ctx context.Context, sn string) (domain.Product, error)
	FindBySNs(ctx context.Context, sns []string) ([]domain.Product, error)
	Save(ctx context.Context, p domain.Product) (string, error)
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{
		dao:    d,
		logger: elog.DefaultLogger}
}

type productRepository struct {
	dao    dao.ProductDAO
	logger *elog.Component
}

func (p *productRepository) FindBySN(ctx context.Context, sn string) (domain.Product, error) {
	res, err := p.dao.FindBySN(ctx, sn)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(res), nil
}

func (p *productRepository) FindBySNs(ctx context.Context, sns []string) ([]domain.Product, error) {
	res, err := p.dao.FindBySNs(ctx, sns)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Product) domain.Product {
		return p.toDomain(src)
	}), nil
}

func (p *productRepository) Save(ctx context.Context, pd domain.Product) (string, error) {
	entity := p.toEntity(pd)
	if entity.SN == "" {
		entity.SN = shortuuid.New()
	}
	_, err := p.dao.Create(ctx, entity)
	return entity.SN, err
}

func (p *productRepository) toDomain(src dao.Product) domain.Product {
	return domain.Product{
		ID:         src.Id,
		SN:         src.SN,
		Name:       src.Name,
		SellerSN:   src.SellerSN,
		Categories: src.Categories.Val,
		Status:     domain.Status(src.Status),
	}
}

func (p *productRepository) toEntity(src domain.Product) dao.Product {
	return dao.Product{
		Id:         src.ID,
		SN:         src.SN,
		Name:       src.Name,
		SellerSN:   src.SellerSN,
		Categories: sqlx.JsonColumn[[]string]{Val: src.Categories, Valid: true},
		Status:     src.Status.ToUint8(),
	}
}
