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
	"time"

	"github.com/ego-component/egorm"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUsageNotFound     = gorm.ErrRecordNotFound
	ErrDuplicateOrder    = errors.New("该订单已存在核销记录")
	ErrGlobalCapReached  = errors.New("优惠券全局使用次数已耗尽")
	ErrAccountCapReached = errors.New("已达到该优惠券的单账号使用上限")
)

type VoucherUsageDAO interface {
	FindByOrderSN(ctx context.Context, orderSN string) (VoucherUsage, error)
	CountSuccesses(ctx context.Context, voucherId, accountId int64) (int64, error)
	// Apply 在单个事务内完成账号上限复核、全局计数器条件自增、
	// 领取记录流转与成功流水落库
	Apply(ctx context.Context, u VoucherUsage, maxUsesPerAccount int64) error
}

type gormVoucherUsageDAO struct {
	db *egorm.Component
}

func NewGORMVoucherUsageDAO(db *egorm.Component) VoucherUsageDAO {
	return &gormVoucherUsageDAO{db: db}
}

func (g *gormVoucherUsageDAO) FindByOrderSN(ctx context.Context, orderSN string) (VoucherUsage, error) {
	var res VoucherUsage
	err := g.db.WithContext(ctx).First(&res, "order_sn = ?", orderSN).Error
	return res, err
}

func (g *gormVoucherUsageDAO) CountSuccesses(ctx context.Context, voucherId, accountId int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&VoucherUsage{}).
		Where("voucher_id = ? AND account_id = ? AND outcome = ?",
			voucherId, accountId, domain.RedemptionOutcomeSuccess.ToUint8()).
		Select("COUNT(id)").Count(&count).Error
	return count, err
}

func (g *gormVoucherUsageDAO) Apply(ctx context.Context, u VoucherUsage, maxUsesPerAccount int64) error {
	now := time.Now().UnixMilli()
	u.Ctime, u.Utime = now, now
	u.Outcome = domain.RedemptionOutcomeSuccess.ToUint8()
	u.Reason = ""
	// 账号上限失败要提交失败流水,不能随事务回滚,所以不能用闭包返回值表达
	var capErr error
	err := g.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		if maxUsesPerAccount > 0 {
			// 复核前先锁模板行,串行化同一张券的核销。
			// 普通读在可重复读隔离级别下看不到并发事务已提交的成功流水,
			// 两个事务会同时通过复核,导致超出单账号上限
			var locked Voucher
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").First(&locked, "id = ?", u.VoucherId).Error; err != nil {
				return err
			}
			var used int64
			err := tx.Model(&VoucherUsage{}).
				Where("voucher_id = ? AND account_id = ? AND outcome = ?",
					u.VoucherId, u.AccountId, domain.RedemptionOutcomeSuccess.ToUint8()).
				Select("COUNT(id)").Count(&used).Error
			if err != nil {
				return err
			}
			if used >= maxUsesPerAccount {
				fail := u
				fail.Outcome = domain.RedemptionOutcomeFailure.ToUint8()
				fail.Reason = string(domain.ReasonAccountCapReached)
				fail.DiscountApplied = 0
				if err := tx.Create(&fail).Error; err != nil {
					if isMySQLUniqueIndexError(err) {
						return ErrDuplicateOrder
					}
					return err
				}
				capErr = ErrAccountCapReached
				return nil
			}
		}

		// 条件自增关闭并发核销的竞态窗口,零行受影响即全局上限已耗尽
		res := tx.Model(&Voucher{}).
			Where("id = ? AND status = ? AND (max_uses = 0 OR current_uses < max_uses)",
				u.VoucherId, VoucherStatusActive).
			Updates(map[string]any{
				"current_uses": gorm.Expr("current_uses + 1"),
				"utime":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGlobalCapReached
		}

		// 首次成功把领取记录置为已使用,多次可用的优惠券后续成功保持已使用
		err := tx.Model(&VoucherVault{}).
			Where("id = ? AND status = ?", u.VaultId, claimStatusClaimed).
			Updates(map[string]any{
				"status":  claimStatusUsed,
				"used_at": now,
				"utime":   now,
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Create(&u).Error; err != nil {
			if isMySQLUniqueIndexError(err) {
				return ErrDuplicateOrder
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return capErr
}

type VoucherUsage struct {
	Id        int64  `gorm:"primaryKey;comment:核销流水ID,雪花ID"`
	OrderSN   string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_usage_order_sn;comment:订单序列号,幂等键"`
	AccountId int64  `gorm:"not null;index:idx_voucher_account_outcome,priority:2;comment:账号ID"`
	VoucherId int64  `gorm:"not null;index:idx_voucher_account_outcome,priority:1;comment:优惠券ID"`
	VaultId   int64  `gorm:"not null;default:0;comment:领取记录ID"`
	// DiscountApplied 核销时冻结的实际抵扣金额,模板后续修改不影响流水
	DiscountApplied int64  `gorm:"not null;default:0;comment:实际抵扣金额,单位为分"`
	Outcome         uint8  `gorm:"type:tinyint unsigned;not null;index:idx_voucher_account_outcome,priority:3;comment:结果 1=成功 2=失败"`
	Reason          string `gorm:"type:varchar(64);not null;default:'';comment:失败原因,成功为空"`
	Ctime           int64
	Utime           int64
}
