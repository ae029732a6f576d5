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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"github.com/retrade/voucher/internal/pkg/metrics"
	"github.com/retrade/voucher/internal/pkg/sequencenumber"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/event"
	"github.com/retrade/voucher/internal/voucher/internal/event/producer"
	"github.com/retrade/voucher/internal/voucher/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrVoucherNotFound     = repository.ErrVoucherNotFound
	ErrDuplicateClaim      = repository.ErrDuplicateClaim
	ErrVoucherNotClaimable = errors.New("优惠券当前不可领取")
)

//go:generate mockgen -source=./service.go -package=vouchermocks -destination=../../mocks/voucher.mock.go -typed Service
type Service interface {
	// Claim 领取优惠券,每个账号对同一张券只能领取一次
	Claim(ctx context.Context, uid int64, code string) (domain.Claim, error)
	ListClaims(ctx context.Context, uid int64, claimedOnly bool, offset, limit int) ([]domain.ClaimedVoucher, int64, error)
	// Validate 只读校验并报价,结果仅供参考,权威判定发生在 Apply 的事务里
	Validate(ctx context.Context, uid int64, code string, orderTotal int64, productSNs []string) (domain.Quote, error)
	// Apply 核销,以订单SN为幂等键,重试返回已落库的结果
	Apply(ctx context.Context, uid int64, code, orderSN string, orderTotal int64, productSNs []string) (domain.RedemptionResult, error)
	// VoucherByCode 公开详情,走旁路缓存
	VoucherByCode(ctx context.Context, code string) (domain.Voucher, error)
	ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error)
}

type service struct {
	repo     repository.VoucherRepository
	matcher  RestrictionMatcher
	snGen    *sequencenumber.Generator
	producer producer.RedemptionEventProducer
	keyGen   func() string
	logger   *elog.Component
}

func NewService(repo repository.VoucherRepository,
	matcher RestrictionMatcher,
	snGen *sequencenumber.Generator,
	p producer.RedemptionEventProducer,
	keyGen func() string) Service {
	return &service{
		repo:     repo,
		matcher:  matcher,
		snGen:    snGen,
		producer: p,
		keyGen:   keyGen,
		logger:   elog.DefaultLogger,
	}
}

func (s *service) Claim(ctx context.Context, uid int64, code string) (domain.Claim, error) {
	v, err := s.repo.FindVoucherByCode(ctx, code)
	if err != nil {
		return domain.Claim{}, err
	}
	now := time.Now().UnixMilli()
	if !v.Activated || now < v.StartDate || now >= v.ExpireDate || v.GlobalCapExhausted() {
		return domain.Claim{}, fmt.Errorf("%w: %s", ErrVoucherNotClaimable, code)
	}
	sn, err := s.snGen.Generate(uid)
	if err != nil {
		return domain.Claim{}, err
	}
	claim := domain.Claim{
		SN:        sn,
		AccountID: uid,
		VoucherID: v.ID,
		Status:    domain.ClaimStatusClaimed,
		ClaimedAt: now,
		// 过期时间从模板冻结,模板后续修改不影响已领取记录
		ExpiresAt: v.ExpireDate,
	}
	id, err := s.repo.CreateClaim(ctx, claim)
	if err != nil {
		return domain.Claim{}, err
	}
	claim.ID = id
	return claim, nil
}

func (s *service) ListClaims(ctx context.Context, uid int64, claimedOnly bool, offset, limit int) ([]domain.ClaimedVoucher, int64, error) {
	var (
		eg     errgroup.Group
		claims []domain.Claim
		total  int64
	)
	eg.Go(func() error {
		var err error
		claims, err = s.repo.ListClaims(ctx, uid, claimedOnly, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalClaims(ctx, uid, claimedOnly)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	if len(claims) == 0 {
		return nil, total, nil
	}
	ids := slice.Map(claims, func(idx int, src domain.Claim) int64 {
		return src.VoucherID
	})
	vouchers, err := s.repo.FindVouchersByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	vmap := make(map[int64]domain.Voucher, len(vouchers))
	for _, v := range vouchers {
		vmap[v.ID] = v
	}
	return slice.Map(claims, func(idx int, src domain.Claim) domain.ClaimedVoucher {
		return domain.ClaimedVoucher{
			Claim:   src,
			Voucher: vmap[src.VoucherID],
		}
	}), total, nil
}

func (s *service) Validate(ctx context.Context, uid int64, code string, orderTotal int64, productSNs []string) (domain.Quote, error) {
	start := time.Now()
	quote, err := s.validate(ctx, uid, code, orderTotal, productSNs)
	metrics.RecordValidateVoucherDuration(statusLabel(err), time.Since(start).Seconds())
	return quote, err
}

func (s *service) validate(ctx context.Context, uid int64, code string, orderTotal int64, productSNs []string) (domain.Quote, error) {
	v, err := s.repo.FindVoucherByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return domain.Quote{Reason: domain.ReasonVoucherNotFound}, nil
		}
		return domain.Quote{}, err
	}
	quote := domain.Quote{VoucherID: v.ID, Code: v.Code}
	reason, err := s.checkEligibility(ctx, v, uid, orderTotal, productSNs, time.Now().UnixMilli())
	if err != nil {
		return domain.Quote{}, err
	}
	if reason != domain.ReasonNone {
		quote.Reason = reason
		return quote, nil
	}
	quote.Valid = true
	quote.DiscountAmount = v.DiscountFor(orderTotal)
	return quote, nil
}

// checkEligibility 按固定顺序短路,第一个不通过的检查决定原因
func (s *service) checkEligibility(ctx context.Context, v domain.Voucher, uid, orderTotal int64, productSNs []string, now int64) (domain.Reason, error) {
	if !v.Activated {
		return domain.ReasonVoucherInactive, nil
	}
	if now < v.StartDate {
		return domain.ReasonVoucherNotStarted, nil
	}
	if now >= v.ExpireDate {
		return domain.ReasonVoucherExpired, nil
	}
	if orderTotal < v.MinSpend {
		return domain.ReasonSpendTooLow, nil
	}
	if v.GlobalCapExhausted() {
		return domain.ReasonGlobalCapReached, nil
	}
	if v.MaxUsesPerAccount > 0 {
		used, err := s.repo.CountSuccessfulRedemptions(ctx, v.ID, uid)
		if err != nil {
			return domain.ReasonNone, err
		}
		if used >= v.MaxUsesPerAccount {
			return domain.ReasonAccountCapReached, nil
		}
	}
	if !s.matcher.Matches(ctx, v, productSNs) {
		return domain.ReasonNotApplicableToOrder, nil
	}
	return domain.ReasonNone, nil
}

func (s *service) Apply(ctx context.Context, uid int64, code, orderSN string, orderTotal int64, productSNs []string) (domain.RedemptionResult, error) {
	start := time.Now()
	res, err := s.apply(ctx, uid, code, orderSN, orderTotal, productSNs)
	metrics.RecordApplyVoucherDuration(statusLabel(err), time.Since(start).Seconds())
	return res, err
}

func (s *service) apply(ctx context.Context, uid int64, code, orderSN string, orderTotal int64, productSNs []string) (domain.RedemptionResult, error) {
	// 幂等短路:同一订单重试直接返回已落库的结果
	stored, err := s.repo.FindRedemptionByOrderSN(ctx, orderSN)
	if err == nil {
		return s.toResult(stored), nil
	}
	if !errors.Is(err, repository.ErrUsageNotFound) {
		return domain.RedemptionResult{}, err
	}

	v, err := s.repo.FindVoucherByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return s.failure(orderSN, domain.ReasonVoucherNotFound), nil
		}
		return domain.RedemptionResult{}, err
	}
	now := time.Now().UnixMilli()
	if !v.Activated {
		return s.failure(orderSN, domain.ReasonVoucherInactive), nil
	}
	if now < v.StartDate {
		return s.failure(orderSN, domain.ReasonVoucherNotStarted), nil
	}
	if now >= v.ExpireDate {
		return s.failure(orderSN, domain.ReasonVoucherExpired), nil
	}
	if orderTotal < v.MinSpend {
		return s.failure(orderSN, domain.ReasonSpendTooLow), nil
	}

	// 必须先领取才能核销
	claim, err := s.repo.FindClaim(ctx, uid, v.ID)
	if err != nil {
		if errors.Is(err, repository.ErrClaimNotFound) {
			return s.failure(orderSN, domain.ReasonNotClaimed), nil
		}
		return domain.RedemptionResult{}, err
	}
	if claim.Status == domain.ClaimStatusExpired ||
		(claim.Status == domain.ClaimStatusClaimed && now >= claim.ExpiresAt) {
		return s.failure(orderSN, domain.ReasonClaimExpired), nil
	}

	// 外部解析在开启事务前完成,超时不会让事务半途而废
	if !s.matcher.Matches(ctx, v, productSNs) {
		return s.failure(orderSN, domain.ReasonNotApplicableToOrder), nil
	}

	discount := v.DiscountFor(orderTotal)
	red := domain.Redemption{
		OrderSN:         orderSN,
		AccountID:       uid,
		VoucherID:       v.ID,
		ClaimID:         claim.ID,
		DiscountApplied: discount,
	}
	err = s.repo.ApplyRedemption(ctx, red, v.MaxUsesPerAccount)
	switch {
	case err == nil:
		s.produceRedemptionEvent(ctx, v, orderSN, uid, discount)
		return domain.RedemptionResult{
			OrderSN:        orderSN,
			Valid:          true,
			DiscountAmount: discount,
		}, nil
	case errors.Is(err, repository.ErrAccountCapReached):
		return s.failure(orderSN, domain.ReasonAccountCapReached), nil
	case errors.Is(err, repository.ErrGlobalCapReached):
		return s.failure(orderSN, domain.ReasonGlobalCapReached), nil
	case errors.Is(err, repository.ErrDuplicateOrder):
		// 并发重试撞了唯一索引,读已落库的结果
		stored, err2 := s.repo.FindRedemptionByOrderSN(ctx, orderSN)
		if err2 != nil {
			return domain.RedemptionResult{}, err2
		}
		return s.toResult(stored), nil
	default:
		return domain.RedemptionResult{}, err
	}
}

func (s *service) VoucherByCode(ctx context.Context, code string) (domain.Voucher, error) {
	return s.repo.CachedVoucherByCode(ctx, code)
}

func (s *service) ExpireClaims(ctx context.Context, expireBefore int64, limit int) (int64, error) {
	return s.repo.ExpireClaims(ctx, expireBefore, limit)
}

func (s *service) produceRedemptionEvent(ctx context.Context, v domain.Voucher, orderSN string, uid, discount int64) {
	evt := event.RedemptionEvent{
		Key:            s.keyGen(),
		OrderSN:        orderSN,
		AccountID:      uid,
		VoucherID:      v.ID,
		Code:           v.Code,
		DiscountAmount: discount,
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送核销事件失败",
			elog.FieldErr(err),
			elog.String("orderSN", orderSN))
	}
}

func (s *service) toResult(r domain.Redemption) domain.RedemptionResult {
	return domain.RedemptionResult{
		OrderSN:        r.OrderSN,
		Valid:          r.Outcome == domain.RedemptionOutcomeSuccess,
		Reason:         r.Reason,
		DiscountAmount: r.DiscountApplied,
	}
}

func (s *service) failure(orderSN string, reason domain.Reason) domain.RedemptionResult {
	return domain.RedemptionResult{OrderSN: orderSN, Reason: reason}
}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
