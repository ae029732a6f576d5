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

package dao

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"github.com/retrade/voucher/internal/product/internal/domain"
)

type ProductDAO interface {
	FindBySN(ctx context.Context, sn string) (Product, error)
	FindBySNs(ctx context.Context, sns []string) ([]Product, error)
	Create(ctx context.Context, p Product) (int64, error)
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{})
}

func (d *ProductGORMDAO) FindBySN(ctx context.Context, sn string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).
		Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).
		First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindBySNs(ctx context.Context, sns []string) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).
		Where("sn IN ? AND status = ?", sns, domain.StatusOnShelf.ToUint8()).
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Create(ctx context.Context, p Product) (int64, error) {
	now := time.Now()
	p.Utime, p.Ctime = now.UnixMilli(), now.UnixMilli()
	return p.Id, d.db.WithContext(ctx).Create(&p).Error
}

type Product struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN       string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sn;comment:商品序列号"`
	Name     string `gorm:"type:varchar(255);not null;comment:商品名称"`
	SellerSN string `gorm:"type:varchar(255);not null;index:idx_seller_sn;comment:卖家序列号"`
	// Categories 商品所属类目名称,JSON格式
	Categories sqlx.JsonColumn[[]string] `gorm:"type:varchar(512);not null;comment:类目名称,JSON格式"`
	Status     uint8                     `gorm:"type:tinyint unsigned;not null;default:2;comment:状态 1=下架 2=上架"`
	Ctime      int64
	Utime      int64
}
