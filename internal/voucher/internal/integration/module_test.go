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

//go:build e2e

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/test"
	testioc "github.com/retrade/voucher/internal/test/ioc"
	"github.com/retrade/voucher/internal/voucher"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/integration/startup"
	"github.com/retrade/voucher/internal/voucher/internal/job"
	"github.com/retrade/voucher/internal/voucher/internal/repository/dao"
	"github.com/retrade/voucher/internal/voucher/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const testUID = int64(8701)

func TestVoucherModule(t *testing.T) {
	suite.Run(t, new(VoucherModuleTestSuite))
}

type VoucherModuleTestSuite struct {
	suite.Suite
	server     *egin.Component
	db         *egorm.Component
	svc        voucher.Service
	adminSvc   voucher.AdminService
	productSvc product.Service
	vaultDAO   dao.VoucherVaultDAO
}

func (s *VoucherModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	pm, err := product.InitModule(s.db)
	require.NoError(s.T(), err)
	s.productSvc = pm.Svc

	m, err := startup.InitModule(pm)
	require.NoError(s.T(), err)
	s.svc = m.Svc
	s.adminSvc = m.AdminSvc
	s.vaultDAO = dao.NewGORMVoucherVaultDAO(s.db)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: testUID,
		}))
	})
	m.Hdl.PublicRoutes(server.Engine)
	m.Hdl.PrivateRoutes(server.Engine)
	m.AdminHdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *VoucherModuleTestSuite) TearDownSuite() {
	s.db.Exec("TRUNCATE TABLE `vouchers`")
	s.db.Exec("TRUNCATE TABLE `voucher_product_restrictions`")
	s.db.Exec("TRUNCATE TABLE `voucher_category_restrictions`")
	s.db.Exec("TRUNCATE TABLE `voucher_seller_restrictions`")
	s.db.Exec("TRUNCATE TABLE `voucher_vaults`")
	s.db.Exec("TRUNCATE TABLE `voucher_usages`")
	s.db.Exec("TRUNCATE TABLE `products`")
}

// createVoucher 创建一张默认一小时前生效、一天后过期的已激活优惠券
func (s *VoucherModuleTestSuite) createVoucher(t *testing.T, v domain.Voucher) domain.Voucher {
	t.Helper()
	now := time.Now().UnixMilli()
	if v.StartDate == 0 {
		v.StartDate = now - time.Hour.Milliseconds()
	}
	if v.ExpireDate == 0 {
		v.ExpireDate = now + 24*time.Hour.Milliseconds()
	}
	created, err := s.adminSvc.Create(context.Background(), v)
	require.NoError(t, err)
	return created
}

func (s *VoucherModuleTestSuite) TestClaimValidateApply() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-PCT10",
		Name:      "九折券",
		Discount:  domain.Discount{Kind: domain.DiscountKindPercentage, Magnitude: 10},
		Activated: true,
		MinSpend:  1000,
	})

	claim, err := s.svc.Claim(ctx, testUID, v.Code)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, claim.Status)
	assert.Equal(t, v.ExpireDate, claim.ExpiresAt)
	assert.NotEmpty(t, claim.SN)

	quote, err := s.svc.Validate(ctx, testUID, v.Code, 2000, nil)
	require.NoError(t, err)
	assert.True(t, quote.Valid)
	assert.Equal(t, int64(200), quote.DiscountAmount)

	res, err := s.svc.Apply(ctx, testUID, v.Code, "order-pct10-1", 2000, nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, int64(200), res.DiscountAmount)

	// 同一订单重试返回已落库的结果
	res2, err := s.svc.Apply(ctx, testUID, v.Code, "order-pct10-1", 2000, nil)
	require.NoError(t, err)
	assert.Equal(t, res, res2)

	// 计数器只加一次
	after, err := s.adminSvc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.CurrentUses)

	// 领取记录已流转为已使用
	claims, total, err := s.svc.ListClaims(ctx, testUID, false, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.ClaimStatusUsed, claims[0].Claim.Status)
	assert.Equal(t, v.Code, claims[0].Voucher.Code)
}

func (s *VoucherModuleTestSuite) TestApplyFixedAmountCappedAtOrderTotal() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-FIXED500",
		Name:      "五元券",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 500},
		Activated: true,
	})
	_, err := s.svc.Claim(ctx, testUID, v.Code)
	require.NoError(t, err)

	res, err := s.svc.Apply(ctx, testUID, v.Code, "order-fixed500-1", 300, nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, int64(300), res.DiscountAmount)
}

func (s *VoucherModuleTestSuite) TestDuplicateClaim() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-DUPCLAIM",
		Name:      "重复领取",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated: true,
	})
	_, err := s.svc.Claim(ctx, testUID, v.Code)
	require.NoError(t, err)
	_, err = s.svc.Claim(ctx, testUID, v.Code)
	assert.ErrorIs(t, err, voucher.ErrDuplicateClaim)
}

func (s *VoucherModuleTestSuite) TestClaimBeforeStart() {
	t := s.T()
	ctx := context.Background()
	now := time.Now().UnixMilli()
	v := s.createVoucher(t, domain.Voucher{
		Code:       "E2E-CLAIMNOTSTARTED",
		Name:       "未到生效时间",
		Discount:   domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated:  true,
		StartDate:  now + time.Hour.Milliseconds(),
		ExpireDate: now + 2*time.Hour.Milliseconds(),
	})
	_, err := s.svc.Claim(ctx, testUID, v.Code)
	assert.ErrorIs(t, err, voucher.ErrVoucherNotClaimable)

	// 不可领取返回专属错误码,不能和不存在混为一谈
	req, err := http.NewRequest(http.MethodPost, "/voucher/claim",
		iox.NewJSONReader(web.ClaimVoucherReq{Code: v.Code}))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 500, recorder.Code)
	var res test.Result[any]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	assert.Equal(t, 512006, res.Code)
	assert.Equal(t, "优惠券当前不可领取", res.Msg)
}

func (s *VoucherModuleTestSuite) TestValidateRejections() {
	t := s.T()
	ctx := context.Background()
	now := time.Now().UnixMilli()

	testCases := []struct {
		name       string
		voucher    domain.Voucher
		orderTotal int64
		wantReason domain.Reason
	}{
		{
			name: "未激活",
			voucher: domain.Voucher{
				Code:      "E2E-INACTIVE",
				Name:      "未激活",
				Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
				Activated: false,
			},
			orderTotal: 1000,
			wantReason: domain.ReasonVoucherInactive,
		},
		{
			name: "未到生效时间",
			voucher: domain.Voucher{
				Code:      "E2E-NOTSTARTED",
				Name:      "未开始",
				Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
				Activated: true,
				StartDate: now + time.Hour.Milliseconds(),
			},
			orderTotal: 1000,
			wantReason: domain.ReasonVoucherNotStarted,
		},
		{
			name: "已过期",
			voucher: domain.Voucher{
				Code:       "E2E-EXPIRED",
				Name:       "已过期",
				Discount:   domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
				Activated:  true,
				StartDate:  now - 2*time.Hour.Milliseconds(),
				ExpireDate: now - time.Hour.Milliseconds(),
			},
			orderTotal: 1000,
			wantReason: domain.ReasonVoucherExpired,
		},
		{
			name: "未达到消费门槛",
			voucher: domain.Voucher{
				Code:      "E2E-MINSPEND",
				Name:      "高门槛",
				Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
				Activated: true,
				MinSpend:  5000,
			},
			orderTotal: 4999,
			wantReason: domain.ReasonSpendTooLow,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := s.createVoucher(t, tc.voucher)
			quote, err := s.svc.Validate(ctx, testUID, v.Code, tc.orderTotal, nil)
			require.NoError(t, err)
			assert.False(t, quote.Valid)
			assert.Equal(t, tc.wantReason, quote.Reason)
		})
	}

	quote, err := s.svc.Validate(ctx, testUID, "E2E-NO-SUCH-CODE", 1000, nil)
	require.NoError(t, err)
	assert.False(t, quote.Valid)
	assert.Equal(t, domain.ReasonVoucherNotFound, quote.Reason)
}

func (s *VoucherModuleTestSuite) TestValidateIsReadOnly() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-READONLY",
		Name:      "只读校验",
		Discount:  domain.Discount{Kind: domain.DiscountKindPercentage, Magnitude: 20},
		Activated: true,
		MaxUses:   1,
	})
	_, err := s.svc.Claim(ctx, testUID, v.Code)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		quote, err := s.svc.Validate(ctx, testUID, v.Code, 1000, nil)
		require.NoError(t, err)
		assert.True(t, quote.Valid)
	}
	after, err := s.adminSvc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.CurrentUses)
}

func (s *VoucherModuleTestSuite) TestApplyNotClaimed() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-NOCLAIM",
		Name:      "未领取",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated: true,
	})
	res, err := s.svc.Apply(ctx, testUID, v.Code, "order-noclaim-1", 1000, nil)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, domain.ReasonNotClaimed, res.Reason)
}

func (s *VoucherModuleTestSuite) TestApplyAccountCap() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:              "E2E-ACCTCAP",
		Name:              "单账号限一次",
		Discount:          domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated:         true,
		MaxUsesPerAccount: 1,
	})
	_, err := s.svc.Claim(ctx, testUID, v.Code)
	require.NoError(t, err)

	res, err := s.svc.Apply(ctx, testUID, v.Code, "order-acctcap-1", 1000, nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res2, err := s.svc.Apply(ctx, testUID, v.Code, "order-acctcap-2", 1000, nil)
	require.NoError(t, err)
	assert.False(t, res2.Valid)
	assert.Equal(t, domain.ReasonAccountCapReached, res2.Reason)

	// 失败流水也落库,重试返回同一结果
	res3, err := s.svc.Apply(ctx, testUID, v.Code, "order-acctcap-2", 1000, nil)
	require.NoError(t, err)
	assert.Equal(t, res2, res3)

	// 全局计数器不受失败影响
	after, err := s.adminSvc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.CurrentUses)
}

func (s *VoucherModuleTestSuite) TestApplyGlobalCap() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-GLOBALCAP",
		Name:      "全局限一次",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated: true,
		MaxUses:   1,
	})
	uidA, uidB := int64(8801), int64(8802)
	_, err := s.svc.Claim(ctx, uidA, v.Code)
	require.NoError(t, err)
	_, err = s.svc.Claim(ctx, uidB, v.Code)
	require.NoError(t, err)

	res, err := s.svc.Apply(ctx, uidA, v.Code, "order-globalcap-a", 1000, nil)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res2, err := s.svc.Apply(ctx, uidB, v.Code, "order-globalcap-b", 1000, nil)
	require.NoError(t, err)
	assert.False(t, res2.Valid)
	assert.Equal(t, domain.ReasonGlobalCapReached, res2.Reason)

	quote, err := s.svc.Validate(ctx, uidB, v.Code, 1000, nil)
	require.NoError(t, err)
	assert.False(t, quote.Valid)
	assert.Equal(t, domain.ReasonGlobalCapReached, quote.Reason)
}

func (s *VoucherModuleTestSuite) TestConcurrentApplyRespectsGlobalCap() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-CONCURRENT",
		Name:      "并发核销",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated: true,
		MaxUses:   3,
	})
	const accounts = 5
	uids := make([]int64, 0, accounts)
	for i := 0; i < accounts; i++ {
		uid := int64(8900 + i)
		_, err := s.svc.Claim(ctx, uid, v.Code)
		require.NoError(t, err)
		uids = append(uids, uid)
	}

	var (
		mu      sync.Mutex
		results []domain.RedemptionResult
	)
	var eg errgroup.Group
	for _, uid := range uids {
		uid := uid
		eg.Go(func() error {
			res, err := s.svc.Apply(ctx, uid, v.Code,
				fmt.Sprintf("order-concurrent-%d", uid), 1000, nil)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	var success int
	for _, res := range results {
		if res.Valid {
			success++
		} else {
			assert.Equal(t, domain.ReasonGlobalCapReached, res.Reason)
		}
	}
	assert.Equal(t, 3, success)

	after, err := s.adminSvc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), after.CurrentUses)
}

func (s *VoucherModuleTestSuite) TestConcurrentApplyRespectsAccountCap() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:              "E2E-CONCURRENT-ACCT",
		Name:              "并发单账号限一次",
		Discount:          domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated:         true,
		MaxUsesPerAccount: 1,
	})
	uid := int64(9100)
	_, err := s.svc.Claim(ctx, uid, v.Code)
	require.NoError(t, err)

	// 同一账号不同订单并发核销,账号上限复核必须串行化,
	// 否则两个事务都数到0,各落一条成功流水
	const orders = 5
	var (
		mu      sync.Mutex
		results []domain.RedemptionResult
	)
	var eg errgroup.Group
	for i := 0; i < orders; i++ {
		i := i
		eg.Go(func() error {
			res, err := s.svc.Apply(ctx, uid, v.Code,
				fmt.Sprintf("order-concurrent-acct-%d", i), 1000, nil)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	var success int
	for _, res := range results {
		if res.Valid {
			success++
		} else {
			assert.Equal(t, domain.ReasonAccountCapReached, res.Reason)
		}
	}
	assert.Equal(t, 1, success)

	usageDAO := dao.NewGORMVoucherUsageDAO(s.db)
	used, err := usageDAO.CountSuccesses(ctx, v.ID, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), used)

	after, err := s.adminSvc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.CurrentUses)
}

func (s *VoucherModuleTestSuite) TestRestrictions() {
	t := s.T()
	ctx := context.Background()
	bookSN, err := s.productSvc.Save(ctx, product.Product{
		Name:       "Go 语言实战",
		SellerSN:   "seller-books",
		Categories: []string{"books"},
		Status:     product.StatusOnShelf,
	})
	require.NoError(t, err)
	toySN, err := s.productSvc.Save(ctx, product.Product{
		Name:       "积木",
		SellerSN:   "seller-toys",
		Categories: []string{"toys"},
		Status:     product.StatusOnShelf,
	})
	require.NoError(t, err)

	v := s.createVoucher(t, domain.Voucher{
		Code:                 "E2E-BOOKSONLY",
		Name:                 "图书专享",
		Discount:             domain.Discount{Kind: domain.DiscountKindPercentage, Magnitude: 15},
		Activated:            true,
		CategoryRestrictions: []string{"books"},
	})

	quote, err := s.svc.Validate(ctx, testUID, v.Code, 1000, []string{bookSN})
	require.NoError(t, err)
	assert.True(t, quote.Valid)

	quote, err = s.svc.Validate(ctx, testUID, v.Code, 1000, []string{toySN})
	require.NoError(t, err)
	assert.False(t, quote.Valid)
	assert.Equal(t, domain.ReasonNotApplicableToOrder, quote.Reason)

	// 订单里只要有一件命中即可用
	quote, err = s.svc.Validate(ctx, testUID, v.Code, 1000, []string{toySN, bookSN})
	require.NoError(t, err)
	assert.True(t, quote.Valid)

	// 商品SN限制不依赖商品服务解析
	v2 := s.createVoucher(t, domain.Voucher{
		Code:                "E2E-SNONLY",
		Name:                "指定商品",
		Discount:            domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 200},
		Activated:           true,
		ProductRestrictions: []string{"sn-unknown-to-product-svc"},
	})
	quote, err = s.svc.Validate(ctx, testUID, v2.Code, 1000, []string{"sn-unknown-to-product-svc"})
	require.NoError(t, err)
	assert.True(t, quote.Valid)
}

func (s *VoucherModuleTestSuite) TestExpireClaimsJob() {
	t := s.T()
	ctx := context.Background()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-EXPIREJOB",
		Name:      "过期任务",
		Discount:  domain.Discount{Kind: domain.DiscountKindFixedAmount, Magnitude: 100},
		Activated: true,
	})
	past := time.Now().Add(-time.Hour).UnixMilli()
	for i := 0; i < 3; i++ {
		uid := int64(9000 + i)
		_, err := s.vaultDAO.Create(ctx, dao.VoucherVault{
			SN:        fmt.Sprintf("vault-expired-%d", uid),
			AccountId: uid,
			VoucherId: v.ID,
			Status:    domain.ClaimStatusClaimed.ToUint8(),
			ClaimedAt: past,
			ExpiresAt: past,
		})
		require.NoError(t, err)
	}

	// limit 设为 1,强制任务分批扫完
	j := job.NewExpireClaimsJob(s.svc, 1, time.Minute)
	assert.Equal(t, "ExpireClaimsJob", j.Name())
	require.NoError(t, j.Run(ctx))

	for i := 0; i < 3; i++ {
		uid := int64(9000 + i)
		claims, _, err := s.svc.ListClaims(ctx, uid, false, 0, 10)
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, domain.ClaimStatusExpired, claims[0].Claim.Status)
	}

	// 过期之后不能再核销
	res, err := s.svc.Apply(ctx, int64(9000), v.Code, "order-expirejob-1", 1000, nil)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, domain.ReasonClaimExpired, res.Reason)
}

func (s *VoucherModuleTestSuite) TestHandlerClaimAndApply() {
	t := s.T()
	v := s.createVoucher(t, domain.Voucher{
		Code:      "E2E-HTTP",
		Name:      "HTTP流程",
		Discount:  domain.Discount{Kind: domain.DiscountKindPercentage, Magnitude: 50},
		Activated: true,
	})

	claimResult := postJSON[web.Claim](s, t, "/voucher/claim", web.ClaimVoucherReq{Code: v.Code})
	assert.Equal(t, 0, claimResult.Code)
	assert.Equal(t, v.ID, claimResult.Data.VoucherID)
	assert.NotEmpty(t, claimResult.Data.SN)

	applyResult := postJSON[web.RedemptionResult](s, t, "/voucher/apply", web.ApplyVoucherReq{
		Code:       v.Code,
		OrderSN:    "order-http-1",
		OrderTotal: 1000,
	})
	assert.Equal(t, 0, applyResult.Code)
	assert.True(t, applyResult.Data.Valid)
	assert.Equal(t, int64(500), applyResult.Data.DiscountAmount)

	detailResult := postJSON[web.Voucher](s, t, "/voucher/detail", web.VoucherDetailReq{Code: v.Code})
	assert.Equal(t, 0, detailResult.Code)
	assert.Equal(t, v.Code, detailResult.Data.Code)
}

func postJSON[T any](s *VoucherModuleTestSuite, t *testing.T, path string, body any) test.Result[T] {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	var res test.Result[T]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	return res
}
