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
	"gorm.io/gorm"
)

var (
	ErrClaimNotFound  = gorm.ErrRecordNotFound
	ErrDuplicateClaim = errors.New("已领取过该优惠券")
)

const (
	claimStatusClaimed uint8 = 1
	claimStatusUsed    uint8 = 2
	claimStatusExpired uint8 = 3
)

type VoucherVaultDAO interface {
	Create(ctx context.Context, v VoucherVault) (int64, error)
	FindByAccountAndVoucher(ctx context.Context, accountId, voucherId int64) (VoucherVault, error)
	ListByAccount(ctx context.Context, accountId int64, claimedOnly bool, offset int, limit int) ([]VoucherVault, error)
	CountByAccount(ctx context.Context, accountId int64, claimedOnly bool) (int64, error)
	ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error)
}

type gormVoucherVaultDAO struct {
	db *egorm.Component
}

func NewGORMVoucherVaultDAO(db *egorm.Component) VoucherVaultDAO {
	return &gormVoucherVaultDAO{db: db}
}

func (g *gormVoucherVaultDAO) Create(ctx context.Context, v VoucherVault) (int64, error) {
	now := time.Now().UnixMilli()
	v.Ctime, v.Utime = now, now
	err := g.db.WithContext(ctx).Create(&v).Error
	if err != nil {
		if isMySQLUniqueIndexError(err) {
			return 0, fmt.Errorf("%w: voucherId=%d", ErrDuplicateClaim, v.VoucherId)
		}
		return 0, err
	}
	return v.Id, nil
}

func (g *gormVoucherVaultDAO) FindByAccountAndVoucher(ctx context.Context, accountId, voucherId int64) (VoucherVault, error) {
	var res VoucherVault
	err := g.db.WithContext(ctx).First(&res, "account_id = ? AND voucher_id = ?", accountId, voucherId).Error
	return res, err
}

func (g *gormVoucherVaultDAO) ListByAccount(ctx context.Context, accountId int64, claimedOnly bool, offset int, limit int) ([]VoucherVault, error) {
	var res []VoucherVault
	err := g.listQuery(ctx, accountId, claimedOnly).
		Order("Utime DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *gormVoucherVaultDAO) CountByAccount(ctx context.Context, accountId int64, claimedOnly bool) (int64, error) {
	var count int64
	err := g.listQuery(ctx, accountId, claimedOnly).Select("COUNT(id)").Count(&count).Error
	return count, err
}

func (g *gormVoucherVaultDAO) listQuery(ctx context.Context, accountId int64, claimedOnly bool) *gorm.DB {
	query := g.db.WithContext(ctx).Model(&VoucherVault{}).Where("account_id = ?", accountId)
	if claimedOnly {
		query = query.Where("status = ?", claimStatusClaimed)
	}
	return query
}

// ExpireClaims 将过期且仍处于已领取状态的记录置为已过期,单次最多处理 limit 条
func (g *gormVoucherVaultDAO) ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error) {
	now := time.Now().UnixMilli()
	res := g.db.WithContext(ctx).Model(&VoucherVault{}).
		Where("status = ? AND expires_at <= ?", claimStatusClaimed, expireBefore).
		Limit(limit).
		Updates(map[string]any{
			"status": claimStatusExpired,
			"utime":  now,
		})
	return res.RowsAffected, res.Error
}

type VoucherVault struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:领取记录自增ID"`
	SN        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_voucher_vault_sn;comment:领取记录序列号"`
	AccountId int64  `gorm:"not null;uniqueIndex:uniq_account_voucher;index:idx_vault_account_id;comment:账号ID"`
	VoucherId int64  `gorm:"not null;uniqueIndex:uniq_account_voucher;comment:优惠券ID"`
	Status    uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=已领取 2=已使用 3=已过期"`
	ClaimedAt int64  `gorm:"not null;comment:领取时间"`
	UsedAt    int64  `gorm:"not null;default:0;comment:使用时间,未使用为0"`
	ExpiresAt int64  `gorm:"not null;index:idx_vault_expires_at;comment:过期时间,领取时从模板冻结"`
	Ctime     int64
	Utime     int64
}
