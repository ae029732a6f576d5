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
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound = gorm.ErrRecordNotFound
	ErrDuplicateCode   = errors.New("优惠券编码已存在")
)

const (
	VoucherStatusInactive uint8 = 1
	VoucherStatusActive   uint8 = 2
)

// VoucherListFilter 管理端列表的类型化过滤条件,零值字段不参与过滤
type VoucherListFilter struct {
	Status   uint8
	Kind     uint8
	CodeLike string
}

type VoucherDAO interface {
	Create(ctx context.Context, v Voucher, r Restrictions) (int64, error)
	Update(ctx context.Context, v Voucher, r Restrictions) error
	Deactivate(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (Voucher, error)
	FindByCode(ctx context.Context, code string) (Voucher, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Voucher, error)
	FindRestrictions(ctx context.Context, voucherId int64) (Restrictions, error)
	ListActivated(ctx context.Context, offset int, limit int) ([]Voucher, error)
	List(ctx context.Context, filter VoucherListFilter, offset int, limit int) ([]Voucher, error)
	Count(ctx context.Context, filter VoucherListFilter) (int64, error)
}

type gormVoucherDAO struct {
	db *egorm.Component
}

func NewGORMVoucherDAO(db *egorm.Component) VoucherDAO {
	return &gormVoucherDAO{db: db}
}

func (g *gormVoucherDAO) Create(ctx context.Context, v Voucher, r Restrictions) (int64, error) {
	now := time.Now().UnixMilli()
	v.Ctime, v.Utime = now, now
	err := g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if err := tx.Create(&v).Error; err != nil {
			return err
		}
		return createRestrictions(tx, v.Id, r, now)
	})
	if err != nil {
		if isMySQLUniqueIndexError(err) {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateCode, v.Code)
		}
		return 0, err
	}
	return v.Id, nil
}

func (g *gormVoucherDAO) Update(ctx context.Context, v Voucher, r Restrictions) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		res := tx.Model(&Voucher{}).Where("id = ?", v.Id).
			Updates(map[string]any{
				"name":                 v.Name,
				"description":          v.Description,
				"discount_kind":        v.DiscountKind,
				"discount_magnitude":   v.DiscountMagnitude,
				"start_date":           v.StartDate,
				"expire_date":          v.ExpireDate,
				"min_spend":            v.MinSpend,
				"max_uses":             v.MaxUses,
				"max_uses_per_account": v.MaxUsesPerAccount,
				"status":               v.Status,
				"utime":                now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: id=%d", ErrVoucherNotFound, v.Id)
		}
		// 限制条件整体替换
		for _, m := range []any{&VoucherProductRestriction{}, &VoucherCategoryRestriction{}, &VoucherSellerRestriction{}} {
			if err := tx.Where("voucher_id = ?", v.Id).Delete(m).Error; err != nil {
				return err
			}
		}
		return createRestrictions(tx, v.Id, r, now)
	})
}

func createRestrictions(tx *egorm.Component, voucherId int64, r Restrictions, now int64) error {
	if len(r.Products) > 0 {
		rows := make([]VoucherProductRestriction, 0, len(r.Products))
		for _, val := range r.Products {
			rows = append(rows, VoucherProductRestriction{VoucherId: voucherId, Value: val, Ctime: now, Utime: now})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(r.Categories) > 0 {
		rows := make([]VoucherCategoryRestriction, 0, len(r.Categories))
		for _, val := range r.Categories {
			rows = append(rows, VoucherCategoryRestriction{VoucherId: voucherId, Value: val, Ctime: now, Utime: now})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(r.Sellers) > 0 {
		rows := make([]VoucherSellerRestriction, 0, len(r.Sellers))
		for _, val := range r.Sellers {
			rows = append(rows, VoucherSellerRestriction{VoucherId: voucherId, Value: val, Ctime: now, Utime: now})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func (g *gormVoucherDAO) Deactivate(ctx context.Context, id int64) error {
	res := g.db.WithContext(ctx).Model(&Voucher{}).Where("id = ?", id).
		Updates(map[string]any{
			"status": VoucherStatusInactive,
			"utime":  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrVoucherNotFound, id)
	}
	return nil
}

func (g *gormVoucherDAO) FindByID(ctx context.Context, id int64) (Voucher, error) {
	var res Voucher
	err := g.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (g *gormVoucherDAO) FindByCode(ctx context.Context, code string) (Voucher, error) {
	var res Voucher
	err := g.db.WithContext(ctx).First(&res, "code = ?", code).Error
	return res, err
}

func (g *gormVoucherDAO) FindByIDs(ctx context.Context, ids []int64) ([]Voucher, error) {
	var res []Voucher
	err := g.db.WithContext(ctx).Find(&res, "id IN ?", ids).Error
	return res, err
}

func (g *gormVoucherDAO) FindRestrictions(ctx context.Context, voucherId int64) (Restrictions, error) {
	var (
		res        Restrictions
		products   []VoucherProductRestriction
		categories []VoucherCategoryRestriction
		sellers    []VoucherSellerRestriction
	)
	db := g.db.WithContext(ctx)
	if err := db.Find(&products, "voucher_id = ?", voucherId).Error; err != nil {
		return res, err
	}
	if err := db.Find(&categories, "voucher_id = ?", voucherId).Error; err != nil {
		return res, err
	}
	if err := db.Find(&sellers, "voucher_id = ?", voucherId).Error; err != nil {
		return res, err
	}
	for _, p := range products {
		res.Products = append(res.Products, p.Value)
	}
	for _, c := range categories {
		res.Categories = append(res.Categories, c.Value)
	}
	for _, s := range sellers {
		res.Sellers = append(res.Sellers, s.Value)
	}
	return res, nil
}

func (g *gormVoucherDAO) ListActivated(ctx context.Context, offset int, limit int) ([]Voucher, error) {
	var res []Voucher
	err := g.db.WithContext(ctx).Model(&Voucher{}).
		Order("Utime DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&res, "status = ?", VoucherStatusActive).Error
	return res, err
}

func (g *gormVoucherDAO) List(ctx context.Context, filter VoucherListFilter, offset int, limit int) ([]Voucher, error) {
	var res []Voucher
	err := g.listQuery(ctx, filter).
		Order("Utime DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *gormVoucherDAO) Count(ctx context.Context, filter VoucherListFilter) (int64, error) {
	var count int64
	err := g.listQuery(ctx, filter).Select("COUNT(id)").Count(&count).Error
	return count, err
}

func (g *gormVoucherDAO) listQuery(ctx context.Context, filter VoucherListFilter) *gorm.DB {
	query := g.db.WithContext(ctx).Model(&Voucher{})
	if filter.Status != 0 {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Kind != 0 {
		query = query.Where("discount_kind = ?", filter.Kind)
	}
	if filter.CodeLike != "" {
		query = query.Where("code LIKE ?", filter.CodeLike+"%")
	}
	return query
}

func isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return true
		}
	}
	return false
}

type Voucher struct {
	Id                int64  `gorm:"primaryKey;autoIncrement;comment:优惠券自增ID"`
	Code              string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_voucher_code;comment:优惠券编码"`
	Name              string `gorm:"type:varchar(255);not null;comment:优惠券名称"`
	Description       string `gorm:"not null;comment:优惠券描述"`
	DiscountKind      uint8  `gorm:"type:tinyint unsigned;not null;comment:折扣类型 1=百分比 2=固定金额"`
	DiscountMagnitude int64  `gorm:"not null;comment:折扣力度,百分比为整数百分比,固定金额单位为分"`
	StartDate         int64  `gorm:"not null;comment:生效时间"`
	ExpireDate        int64  `gorm:"not null;index:idx_voucher_expire_date;comment:失效时间"`
	Status            uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=未启用 2=启用"`
	MinSpend          int64  `gorm:"not null;default:0;comment:订单最低消费,单位为分"`
	// MaxUses 为 0 表示不限次数
	MaxUses           int64 `gorm:"not null;default:0;comment:全局最大使用次数,0为不限"`
	MaxUsesPerAccount int64 `gorm:"not null;default:0;comment:单账号最大使用次数,0为不限"`
	CurrentUses       int64 `gorm:"not null;default:0;comment:已成功核销次数"`
	Ctime             int64
	Utime             int64
}

type Restrictions struct {
	Products   []string
	Categories []string
	Sellers    []string
}

type VoucherProductRestriction struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	VoucherId int64  `gorm:"not null;uniqueIndex:uniq_voucher_product;index:idx_product_voucher_id;comment:优惠券ID"`
	Value     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_voucher_product;comment:商品SN"`
	Ctime     int64
	Utime     int64
}

type VoucherCategoryRestriction struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	VoucherId int64  `gorm:"not null;uniqueIndex:uniq_voucher_category;index:idx_category_voucher_id;comment:优惠券ID"`
	Value     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_voucher_category;comment:类目名称"`
	Ctime     int64
	Utime     int64
}

type VoucherSellerRestriction struct {
	Id        int64  `gorm:"primaryKey;autoIncrement"`
	VoucherId int64  `gorm:"not null;uniqueIndex:uniq_voucher_seller;index:idx_seller_voucher_id;comment:优惠券ID"`
	Value     string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_voucher_seller;comment:卖家SN"`
	Ctime     int64
	Utime     int64
}
