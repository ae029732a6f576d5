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

package web

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/service"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/voucher")
	g.POST("/detail", ginx.B[VoucherDetailReq](h.Detail))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/voucher")
	g.POST("/claim", ginx.BS[ClaimVoucherReq](h.Claim))
	g.POST("/list", ginx.BS[ListClaimsReq](h.ListClaims))
	g.POST("/validate", ginx.BS[ValidateVoucherReq](h.Validate))
	g.POST("/apply", ginx.BS[ApplyVoucherReq](h.Apply))
}

func (h *Handler) Detail(ctx *ginx.Context, req VoucherDetailReq) (ginx.Result, error) {
	v, err := h.svc.VoucherByCode(ctx.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			return voucherNotFoundResult, err
		}
		return systemErrorResult, fmt.Errorf("获取优惠券详情失败: %w", err)
	}
	return ginx.Result{Data: newVoucher(v)}, nil
}

func (h *Handler) Claim(ctx *ginx.Context, req ClaimVoucherReq, sess session.Session) (ginx.Result, error) {
	claim, err := h.svc.Claim(ctx.Request.Context(), sess.Claims().Uid, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			return voucherNotFoundResult, err
		}
		if errors.Is(err, service.ErrDuplicateClaim) {
			return duplicateClaimResult, err
		}
		if errors.Is(err, service.ErrVoucherNotClaimable) {
			return notClaimableResult, err
		}
		return systemErrorResult, fmt.Errorf("领取优惠券失败: %w", err)
	}
	return ginx.Result{Data: newClaim(claim)}, nil
}

func (h *Handler) ListClaims(ctx *ginx.Context, req ListClaimsReq, sess session.Session) (ginx.Result, error) {
	claims, total, err := h.svc.ListClaims(ctx.Request.Context(), sess.Claims().Uid,
		req.ClaimedOnly, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("获取个人优惠券失败: %w", err)
	}
	return ginx.Result{
		Data: ListClaimsResp{
			Total: total,
			Claims: slice.Map(claims, func(idx int, src domain.ClaimedVoucher) ClaimedVoucher {
				return ClaimedVoucher{
					Claim:   newClaim(src.Claim),
					Voucher: newVoucher(src.Voucher),
				}
			}),
		},
	}, nil
}

func (h *Handler) Validate(ctx *ginx.Context, req ValidateVoucherReq, sess session.Session) (ginx.Result, error) {
	quote, err := h.svc.Validate(ctx.Request.Context(), sess.Claims().Uid,
		req.Code, req.OrderTotal, req.ProductSNs)
	if err != nil {
		return systemErrorResult, fmt.Errorf("校验优惠券失败: %w", err)
	}
	return ginx.Result{
		Data: Quote{
			VoucherID:      quote.VoucherID,
			Code:           quote.Code,
			Valid:          quote.Valid,
			Reason:         string(quote.Reason),
			DiscountAmount: quote.DiscountAmount,
		},
	}, nil
}

func (h *Handler) Apply(ctx *ginx.Context, req ApplyVoucherReq, sess session.Session) (ginx.Result, error) {
	res, err := h.svc.Apply(ctx.Request.Context(), sess.Claims().Uid,
		req.Code, req.OrderSN, req.OrderTotal, req.ProductSNs)
	if err != nil {
		return systemErrorResult, fmt.Errorf("核销优惠券失败: %w", err)
	}
	return ginx.Result{
		Data: RedemptionResult{
			OrderSN:        res.OrderSN,
			Valid:          res.Valid,
			Reason:         string(res.Reason),
			DiscountAmount: res.DiscountAmount,
		},
	}, nil
}
