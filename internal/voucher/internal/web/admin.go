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
	"github.com/gin-gonic/gin"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/retrade/voucher/internal/voucher/internal/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/admin/voucher")
	g.POST("/create", ginx.B[CreateVoucherReq](h.Create))
	g.POST("/update", ginx.B[UpdateVoucherReq](h.Update))
	g.POST("/deactivate", ginx.B[DeactivateVoucherReq](h.Deactivate))
	g.POST("/detail", ginx.B[AdminDetailReq](h.Detail))
	g.POST("/list", ginx.B[AdminListReq](h.List))
}

func (h *AdminHandler) Create(ctx *ginx.Context, req CreateVoucherReq) (ginx.Result, error) {
	created, err := h.svc.Create(ctx.Request.Context(), domain.Voucher{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Discount: domain.Discount{
			Kind:      domain.DiscountKind(req.DiscountKind),
			Magnitude: req.DiscountMagnitude,
		},
		StartDate:            req.StartDate,
		ExpireDate:           req.ExpireDate,
		Activated:            req.Activated,
		MinSpend:             req.MinSpend,
		MaxUses:              req.MaxUses,
		MaxUsesPerAccount:    req.MaxUsesPerAccount,
		ProductRestrictions:  req.ProductRestrictions,
		CategoryRestrictions: req.CategoryRestrictions,
		SellerRestrictions:   req.SellerRestrictions,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			return duplicateCodeResult, err
		}
		if errors.Is(err, service.ErrInvalidRule) {
			return invalidRuleResult, err
		}
		return systemErrorResult, fmt.Errorf("创建优惠券失败: %w", err)
	}
	return ginx.Result{Data: newVoucher(created)}, nil
}

func (h *AdminHandler) Update(ctx *ginx.Context, req UpdateVoucherReq) (ginx.Result, error) {
	err := h.svc.Update(ctx.Request.Context(), domain.Voucher{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Discount: domain.Discount{
			Kind:      domain.DiscountKind(req.DiscountKind),
			Magnitude: req.DiscountMagnitude,
		},
		StartDate:            req.StartDate,
		ExpireDate:           req.ExpireDate,
		Activated:            req.Activated,
		MinSpend:             req.MinSpend,
		MaxUses:              req.MaxUses,
		MaxUsesPerAccount:    req.MaxUsesPerAccount,
		ProductRestrictions:  req.ProductRestrictions,
		CategoryRestrictions: req.CategoryRestrictions,
		SellerRestrictions:   req.SellerRestrictions,
	})
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			return voucherNotFoundResult, err
		}
		if errors.Is(err, service.ErrInvalidRule) {
			return invalidRuleResult, err
		}
		return systemErrorResult, fmt.Errorf("更新优惠券失败: %w", err)
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Deactivate(ctx *ginx.Context, req DeactivateVoucherReq) (ginx.Result, error) {
	err := h.svc.Deactivate(ctx.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			return voucherNotFoundResult, err
		}
		return systemErrorResult, fmt.Errorf("停用优惠券失败: %w", err)
	}
	return ginx.Result{}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context, req AdminDetailReq) (ginx.Result, error) {
	var (
		v   domain.Voucher
		err error
	)
	if req.ID > 0 {
		v, err = h.svc.GetByID(ctx.Request.Context(), req.ID)
	} else {
		v, err = h.svc.GetByCode(ctx.Request.Context(), req.Code)
	}
	if err != nil {
		if errors.Is(err, service.ErrVoucherNotFound) {
			return voucherNotFoundResult, err
		}
		return systemErrorResult, fmt.Errorf("查询优惠券失败: %w", err)
	}
	return ginx.Result{Data: newVoucher(v)}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req AdminListReq) (ginx.Result, error) {
	filter := domain.VoucherFilter{
		OnlyActivated: req.OnlyActivated,
		Kind:          domain.DiscountKind(req.DiscountKind),
		CodePrefix:    req.CodePrefix,
	}
	vouchers, total, err := h.svc.List(ctx.Request.Context(), filter, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询优惠券列表失败: %w", err)
	}
	return ginx.Result{
		Data: AdminListResp{
			Total: total,
			Vouchers: slice.Map(vouchers, func(idx int, src domain.Voucher) Voucher {
				return newVoucher(src)
			}),
		},
	}, nil
}
