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
	"errors"
	"fmt"

	"github.com/retrade/voucher/internal/pkg/sequencenumber"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrDuplicateCode = repository.ErrDuplicateCode
	ErrInvalidRule   = errors.New("优惠规则非法")
)

const maxPercentage = 100

type AdminService interface {
	// Create 创建模板,Code 为空时自动生成
	Create(ctx context.Context, v domain.Voucher) (domain.Voucher, error)
	Update(ctx context.Context, v domain.Voucher) error
	Deactivate(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (domain.Voucher, error)
	GetByCode(ctx context.Context, code string) (domain.Voucher, error)
	ListActivated(ctx context.Context, offset, limit int) ([]domain.Voucher, error)
	List(ctx context.Context, filter domain.VoucherFilter, offset, limit int) ([]domain.Voucher, int64, error)
}

type adminService struct {
	repo  repository.VoucherRepository
	snGen *sequencenumber.Generator
}

func NewAdminService(repo repository.VoucherRepository, snGen *sequencenumber.Generator) AdminService {
	return &adminService{repo: repo, snGen: snGen}
}

func (s *adminService) Create(ctx context.Context, v domain.Voucher) (domain.Voucher, error) {
	if err := s.checkRule(v); err != nil {
		return domain.Voucher{}, err
	}
	if v.Code == "" {
		code, err := s.snGen.GenerateCode("")
		if err != nil {
			return domain.Voucher{}, err
		}
		v.Code = code
	}
	id, err := s.repo.CreateVoucher(ctx, v)
	if err != nil {
		return domain.Voucher{}, err
	}
	v.ID = id
	return v, nil
}

func (s *adminService) Update(ctx context.Context, v domain.Voucher) error {
	if err := s.checkRule(v); err != nil {
		return err
	}
	return s.repo.UpdateVoucher(ctx, v)
}

func (s *adminService) checkRule(v domain.Voucher) error {
	if v.Discount.Magnitude < 0 {
		return fmt.Errorf("%w: 折扣力度为负", ErrInvalidRule)
	}
	if v.Discount.Kind == domain.DiscountKindPercentage && v.Discount.Magnitude > maxPercentage {
		return fmt.Errorf("%w: 百分比折扣超过100", ErrInvalidRule)
	}
	if v.Discount.Kind != domain.DiscountKindPercentage && v.Discount.Kind != domain.DiscountKindFixedAmount {
		return fmt.Errorf("%w: 未知折扣类型 %d", ErrInvalidRule, v.Discount.Kind)
	}
	if v.ExpireDate <= v.StartDate {
		return fmt.Errorf("%w: 失效时间早于生效时间", ErrInvalidRule)
	}
	if v.MinSpend < 0 || v.MaxUses < 0 || v.MaxUsesPerAccount < 0 {
		return fmt.Errorf("%w: 门槛或上限为负", ErrInvalidRule)
	}
	return nil
}

func (s *adminService) Deactivate(ctx context.Context, id int64) error {
	return s.repo.DeactivateVoucher(ctx, id)
}

func (s *adminService) GetByID(ctx context.Context, id int64) (domain.Voucher, error) {
	return s.repo.FindVoucherByID(ctx, id)
}

func (s *adminService) GetByCode(ctx context.Context, code string) (domain.Voucher, error) {
	return s.repo.FindVoucherByCode(ctx, code)
}

func (s *adminService) ListActivated(ctx context.Context, offset, limit int) ([]domain.Voucher, error) {
	return s.repo.ListActivatedVouchers(ctx, offset, limit)
}

func (s *adminService) List(ctx context.Context, filter domain.VoucherFilter, offset, limit int) ([]domain.Voucher, int64, error) {
	var (
		eg       errgroup.Group
		vouchers []domain.Voucher
		total    int64
	)
	eg.Go(func() error {
		var err error
		vouchers, err = s.repo.ListVouchers(ctx, filter, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalVouchers(ctx, filter)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}
