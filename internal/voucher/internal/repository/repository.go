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
	"github.com/gotomicro/ego/core/elog"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/repository/cache"
	"github.com/retrade/voucher/internal/voucher/internal/repository/dao"
)

var (
	ErrVoucherNotFound   = dao.ErrVoucherNotFound
	ErrDuplicateCode     = dao.ErrDuplicateCode
	ErrClaimNotFound     = dao.ErrClaimNotFound
	ErrDuplicateClaim    = dao.ErrDuplicateClaim
	ErrUsageNotFound     = dao.ErrUsageNotFound
	ErrDuplicateOrder    = dao.ErrDuplicateOrder
	ErrGlobalCapReached  = dao.ErrGlobalCapReached
	ErrAccountCapReached = dao.ErrAccountCapReached
)

type VoucherRepository interface {
	CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error)
	UpdateVoucher(ctx context.Context, v domain.Voucher) error
	DeactivateVoucher(ctx context.Context, id int64) error
	FindVoucherByID(ctx context.Context, id int64) (domain.Voucher, error)
	FindVoucherByCode(ctx context.Context, code string) (domain.Voucher, error)
	// CachedVoucherByCode 给公开详情页用的旁路缓存读取,结果可能短暂落后于库表
	CachedVoucherByCode(ctx context.Context, code string) (domain.Voucher, error)
	FindVouchersByIDs(ctx context.Context, ids []int64) ([]domain.Voucher, error)
	ListActivatedVouchers(ctx context.Context, offset, limit int) ([]domain.Voucher, error)
	ListVouchers(ctx context.Context, filter domain.VoucherFilter, offset, limit int) ([]domain.Voucher, error)
	TotalVouchers(ctx context.Context, filter domain.VoucherFilter) (int64, error)

	CreateClaim(ctx context.Context, c domain.Claim) (int64, error)
	FindClaim(ctx context.Context, accountId, voucherId int64) (domain.Claim, error)
	ListClaims(ctx context.Context, accountId int64, claimedOnly bool, offset, limit int) ([]domain.Claim, error)
	TotalClaims(ctx context.Context, accountId int64, claimedOnly bool) (int64, error)
	ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error)

	FindRedemptionByOrderSN(ctx context.Context, orderSN string) (domain.Redemption, error)
	CountSuccessfulRedemptions(ctx context.Context, voucherId, accountId int64) (int64, error)
	// ApplyRedemption 原子核销,业务失败通过 Err{Global,Account}CapReached 和 ErrDuplicateOrder 暴露
	ApplyRedemption(ctx context.Context, r domain.Redemption, maxUsesPerAccount int64) error
}

type voucherRepository struct {
	voucherDAO dao.VoucherDAO
	vaultDAO   dao.VoucherVaultDAO
	usageDAO   dao.VoucherUsageDAO
	cache      cache.VoucherCache
	logger     *elog.Component
}

func NewRepository(voucherDAO dao.VoucherDAO,
	vaultDAO dao.VoucherVaultDAO,
	usageDAO dao.VoucherUsageDAO,
	c cache.VoucherCache) VoucherRepository {
	return &voucherRepository{
		voucherDAO: voucherDAO,
		vaultDAO:   vaultDAO,
		usageDAO:   usageDAO,
		cache:      c,
		logger:     elog.DefaultLogger,
	}
}

func (m *voucherRepository) CreateVoucher(ctx context.Context, v domain.Voucher) (int64, error) {
	return m.voucherDAO.Create(ctx, m.toVoucherEntity(v), m.toRestrictions(v))
}

func (m *voucherRepository) UpdateVoucher(ctx context.Context, v domain.Voucher) error {
	err := m.voucherDAO.Update(ctx, m.toVoucherEntity(v), m.toRestrictions(v))
	if err != nil {
		return err
	}
	if err := m.cache.DelVoucher(ctx, v.Code); err != nil {
		m.logger.Error("清理优惠券缓存失败", elog.FieldErr(err), elog.String("code", v.Code))
	}
	return nil
}

func (m *voucherRepository) DeactivateVoucher(ctx context.Context, id int64) error {
	v, err := m.voucherDAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := m.voucherDAO.Deactivate(ctx, id); err != nil {
		return err
	}
	if err := m.cache.DelVoucher(ctx, v.Code); err != nil {
		m.logger.Error("清理优惠券缓存失败", elog.FieldErr(err), elog.String("code", v.Code))
	}
	return nil
}

func (m *voucherRepository) FindVoucherByID(ctx context.Context, id int64) (domain.Voucher, error) {
	v, err := m.voucherDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Voucher{}, err
	}
	return m.attachRestrictions(ctx, v)
}

func (m *voucherRepository) FindVoucherByCode(ctx context.Context, code string) (domain.Voucher, error) {
	v, err := m.voucherDAO.FindByCode(ctx, code)
	if err != nil {
		return domain.Voucher{}, err
	}
	return m.attachRestrictions(ctx, v)
}

func (m *voucherRepository) CachedVoucherByCode(ctx context.Context, code string) (domain.Voucher, error) {
	v, err := m.cache.GetVoucher(ctx, code)
	if err == nil {
		return v, nil
	}
	v, err = m.FindVoucherByCode(ctx, code)
	if err != nil {
		return domain.Voucher{}, err
	}
	if err := m.cache.SetVoucher(ctx, v); err != nil {
		m.logger.Error("缓存优惠券失败", elog.FieldErr(err), elog.String("code", code))
	}
	return v, nil
}

func (m *voucherRepository) FindVouchersByIDs(ctx context.Context, ids []int64) ([]domain.Voucher, error) {
	vs, err := m.voucherDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(vs, func(idx int, src dao.Voucher) domain.Voucher {
		return m.toVoucherDomain(src, dao.Restrictions{})
	}), nil
}

func (m *voucherRepository) ListActivatedVouchers(ctx context.Context, offset, limit int) ([]domain.Voucher, error) {
	vs, err := m.voucherDAO.ListActivated(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(vs, func(idx int, src dao.Voucher) domain.Voucher {
		return m.toVoucherDomain(src, dao.Restrictions{})
	}), nil
}

func (m *voucherRepository) ListVouchers(ctx context.Context, filter domain.VoucherFilter, offset, limit int) ([]domain.Voucher, error) {
	vs, err := m.voucherDAO.List(ctx, m.toListFilter(filter), offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(vs, func(idx int, src dao.Voucher) domain.Voucher {
		return m.toVoucherDomain(src, dao.Restrictions{})
	}), nil
}

func (m *voucherRepository) TotalVouchers(ctx context.Context, filter domain.VoucherFilter) (int64, error) {
	return m.voucherDAO.Count(ctx, m.toListFilter(filter))
}

func (m *voucherRepository) toListFilter(filter domain.VoucherFilter) dao.VoucherListFilter {
	res := dao.VoucherListFilter{
		Kind:     filter.Kind.ToUint8(),
		CodeLike: filter.CodePrefix,
	}
	if filter.OnlyActivated {
		res.Status = dao.VoucherStatusActive
	}
	return res
}

func (m *voucherRepository) CreateClaim(ctx context.Context, c domain.Claim) (int64, error) {
	return m.vaultDAO.Create(ctx, m.toVaultEntity(c))
}

func (m *voucherRepository) FindClaim(ctx context.Context, accountId, voucherId int64) (domain.Claim, error) {
	v, err := m.vaultDAO.FindByAccountAndVoucher(ctx, accountId, voucherId)
	if err != nil {
		return domain.Claim{}, err
	}
	return m.toClaimDomain(v), nil
}

func (m *voucherRepository) ListClaims(ctx context.Context, accountId int64, claimedOnly bool, offset, limit int) ([]domain.Claim, error) {
	vs, err := m.vaultDAO.ListByAccount(ctx, accountId, claimedOnly, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(vs, func(idx int, src dao.VoucherVault) domain.Claim {
		return m.toClaimDomain(src)
	}), nil
}

func (m *voucherRepository) TotalClaims(ctx context.Context, accountId int64, claimedOnly bool) (int64, error) {
	return m.vaultDAO.CountByAccount(ctx, accountId, claimedOnly)
}

func (m *voucherRepository) ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error) {
	return m.vaultDAO.ExpireClaims(ctx, expireBefore, limit)
}

func (m *voucherRepository) FindRedemptionByOrderSN(ctx context.Context, orderSN string) (domain.Redemption, error) {
	u, err := m.usageDAO.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Redemption{}, err
	}
	return m.toRedemptionDomain(u), nil
}

func (m *voucherRepository) CountSuccessfulRedemptions(ctx context.Context, voucherId, accountId int64) (int64, error) {
	return m.usageDAO.CountSuccesses(ctx, voucherId, accountId)
}

func (m *voucherRepository) ApplyRedemption(ctx context.Context, r domain.Redemption, maxUsesPerAccount int64) error {
	return m.usageDAO.Apply(ctx, dao.VoucherUsage{
		OrderSN:         r.OrderSN,
		AccountId:       r.AccountID,
		VoucherId:       r.VoucherID,
		VaultId:         r.ClaimID,
		DiscountApplied: r.DiscountApplied,
	}, maxUsesPerAccount)
}

func (m *voucherRepository) attachRestrictions(ctx context.Context, v dao.Voucher) (domain.Voucher, error) {
	r, err := m.voucherDAO.FindRestrictions(ctx, v.Id)
	if err != nil {
		return domain.Voucher{}, err
	}
	return m.toVoucherDomain(v, r), nil
}

func (m *voucherRepository) toVoucherDomain(v dao.Voucher, r dao.Restrictions) domain.Voucher {
	return domain.Voucher{
		ID:          v.Id,
		Code:        v.Code,
		Name:        v.Name,
		Description: v.Description,
		Discount: domain.Discount{
			Kind:      domain.DiscountKind(v.DiscountKind),
			Magnitude: v.DiscountMagnitude,
		},
		StartDate:            v.StartDate,
		ExpireDate:           v.ExpireDate,
		Activated:            v.Status == dao.VoucherStatusActive,
		MaxUses:              v.MaxUses,
		MaxUsesPerAccount:    v.MaxUsesPerAccount,
		CurrentUses:          v.CurrentUses,
		MinSpend:             v.MinSpend,
		ProductRestrictions:  r.Products,
		CategoryRestrictions: r.Categories,
		SellerRestrictions:   r.Sellers,
		Ctime:                v.Ctime,
		Utime:                v.Utime,
	}
}

func (m *voucherRepository) toVoucherEntity(v domain.Voucher) dao.Voucher {
	status := dao.VoucherStatusInactive
	if v.Activated {
		status = dao.VoucherStatusActive
	}
	return dao.Voucher{
		Id:                v.ID,
		Code:              v.Code,
		Name:              v.Name,
		Description:       v.Description,
		DiscountKind:      v.Discount.Kind.ToUint8(),
		DiscountMagnitude: v.Discount.Magnitude,
		StartDate:         v.StartDate,
		ExpireDate:        v.ExpireDate,
		Status:            status,
		MinSpend:          v.MinSpend,
		MaxUses:           v.MaxUses,
		MaxUsesPerAccount: v.MaxUsesPerAccount,
		CurrentUses:       v.CurrentUses,
	}
}

func (m *voucherRepository) toRestrictions(v domain.Voucher) dao.Restrictions {
	return dao.Restrictions{
		Products:   v.ProductRestrictions,
		Categories: v.CategoryRestrictions,
		Sellers:    v.SellerRestrictions,
	}
}

func (m *voucherRepository) toVaultEntity(c domain.Claim) dao.VoucherVault {
	return dao.VoucherVault{
		SN:        c.SN,
		AccountId: c.AccountID,
		VoucherId: c.VoucherID,
		Status:    c.Status.ToUint8(),
		ClaimedAt: c.ClaimedAt,
		UsedAt:    c.UsedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (m *voucherRepository) toClaimDomain(v dao.VoucherVault) domain.Claim {
	return domain.Claim{
		ID:        v.Id,
		SN:        v.SN,
		AccountID: v.AccountId,
		VoucherID: v.VoucherId,
		Status:    domain.ClaimStatus(v.Status),
		ClaimedAt: v.ClaimedAt,
		UsedAt:    v.UsedAt,
		ExpiresAt: v.ExpiresAt,
	}
}

func (m *voucherRepository) toRedemptionDomain(u dao.VoucherUsage) domain.Redemption {
	return domain.Redemption{
		ID:              u.Id,
		OrderSN:         u.OrderSN,
		AccountID:       u.AccountId,
		VoucherID:       u.VoucherId,
		ClaimID:         u.VaultId,
		DiscountApplied: u.DiscountApplied,
		Outcome:         domain.RedemptionOutcome(u.Outcome),
		Reason:          domain.Reason(u.Reason),
		Ctime:           u.Ctime,
		Utime:           u.Utime,
	}
}
