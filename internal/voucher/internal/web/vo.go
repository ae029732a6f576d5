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

import "github.com/retrade/voucher/internal/voucher/internal/domain"

// VoucherDetailReq 按编码查询优惠券详情
type VoucherDetailReq struct {
	Code string `json:"code"`
}

// ClaimVoucherReq 领取优惠券
type ClaimVoucherReq struct {
	Code string `json:"code"`
}

// ListClaimsReq 分页查询用户已领取的优惠券
type ListClaimsReq struct {
	ClaimedOnly bool `json:"claimedOnly,omitempty"`
	Offset      int  `json:"offset,omitempty"`
	Limit       int  `json:"limit,omitempty"`
}

type ListClaimsResp struct {
	Total  int64          `json:"total"`
	Claims []ClaimedVoucher `json:"claims"`
}

// ValidateVoucherReq 只读校验并报价
type ValidateVoucherReq struct {
	Code       string   `json:"code"`
	OrderTotal int64    `json:"orderTotal"`
	ProductSNs []string `json:"productSNs,omitempty"`
}

// ApplyVoucherReq 核销,OrderSN 是幂等键
type ApplyVoucherReq struct {
	Code       string   `json:"code"`
	OrderSN    string   `json:"orderSN"`
	OrderTotal int64    `json:"orderTotal"`
	ProductSNs []string `json:"productSNs,omitempty"`
}

type Voucher struct {
	ID                   int64    `json:"id"`
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	DiscountKind         uint8    `json:"discountKind"`
	DiscountMagnitude    int64    `json:"discountMagnitude"`
	StartDate            int64    `json:"startDate"`
	ExpireDate           int64    `json:"expireDate"`
	Activated            bool     `json:"activated"`
	MinSpend             int64    `json:"minSpend"`
	MaxUses              int64    `json:"maxUses"`
	MaxUsesPerAccount    int64    `json:"maxUsesPerAccount"`
	CurrentUses          int64    `json:"currentUses"`
	ProductRestrictions  []string `json:"productRestrictions,omitempty"`
	CategoryRestrictions []string `json:"categoryRestrictions,omitempty"`
	SellerRestrictions   []string `json:"sellerRestrictions,omitempty"`
}

type Claim struct {
	SN        string `json:"sn"`
	VoucherID int64  `json:"voucherId"`
	Status    uint8  `json:"status"`
	ClaimedAt int64  `json:"claimedAt"`
	UsedAt    int64  `json:"usedAt,omitempty"`
	ExpiresAt int64  `json:"expiresAt"`
}

type ClaimedVoucher struct {
	Claim   Claim   `json:"claim"`
	Voucher Voucher `json:"voucher"`
}

type Quote struct {
	VoucherID      int64  `json:"voucherId"`
	Code           string `json:"code"`
	Valid          bool   `json:"valid"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discountAmount"`
}

type RedemptionResult struct {
	OrderSN        string `json:"orderSN"`
	Valid          bool   `json:"valid"`
	Reason         string `json:"reason,omitempty"`
	DiscountAmount int64  `json:"discountAmount"`
}

// CreateVoucherReq 创建模板,Code 为空时自动生成
type CreateVoucherReq struct {
	Code                 string   `json:"code,omitempty"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	DiscountKind         uint8    `json:"discountKind"`
	DiscountMagnitude    int64    `json:"discountMagnitude"`
	StartDate            int64    `json:"startDate"`
	ExpireDate           int64    `json:"expireDate"`
	Activated            bool     `json:"activated"`
	MinSpend             int64    `json:"minSpend,omitempty"`
	MaxUses              int64    `json:"maxUses,omitempty"`
	MaxUsesPerAccount    int64    `json:"maxUsesPerAccount,omitempty"`
	ProductRestrictions  []string `json:"productRestrictions,omitempty"`
	CategoryRestrictions []string `json:"categoryRestrictions,omitempty"`
	SellerRestrictions   []string `json:"sellerRestrictions,omitempty"`
}

type UpdateVoucherReq struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	DiscountKind         uint8    `json:"discountKind"`
	DiscountMagnitude    int64    `json:"discountMagnitude"`
	StartDate            int64    `json:"startDate"`
	ExpireDate           int64    `json:"expireDate"`
	Activated            bool     `json:"activated"`
	MinSpend             int64    `json:"minSpend,omitempty"`
	MaxUses              int64    `json:"maxUses,omitempty"`
	MaxUsesPerAccount    int64    `json:"maxUsesPerAccount,omitempty"`
	ProductRestrictions  []string `json:"productRestrictions,omitempty"`
	CategoryRestrictions []string `json:"categoryRestrictions,omitempty"`
	SellerRestrictions   []string `json:"sellerRestrictions,omitempty"`
}

type DeactivateVoucherReq struct {
	ID int64 `json:"id"`
}

type AdminDetailReq struct {
	ID   int64  `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
}

// AdminListReq 类型化过滤的分页列表
type AdminListReq struct {
	OnlyActivated bool   `json:"onlyActivated,omitempty"`
	DiscountKind  uint8  `json:"discountKind,omitempty"`
	CodePrefix    string `json:"codePrefix,omitempty"`
	Offset        int    `json:"offset,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

type AdminListResp struct {
	Total    int64     `json:"total"`
	Vouchers []Voucher `json:"vouchers"`
}

func newVoucher(v domain.Voucher) Voucher {
	return Voucher{
		ID:                   v.ID,
		Code:                 v.Code,
		Name:                 v.Name,
		Description:          v.Description,
		DiscountKind:         v.Discount.Kind.ToUint8(),
		DiscountMagnitude:    v.Discount.Magnitude,
		StartDate:            v.StartDate,
		ExpireDate:           v.ExpireDate,
		Activated:            v.Activated,
		MinSpend:             v.MinSpend,
		MaxUses:              v.MaxUses,
		MaxUsesPerAccount:    v.MaxUsesPerAccount,
		CurrentUses:          v.CurrentUses,
		ProductRestrictions:  v.ProductRestrictions,
		CategoryRestrictions: v.CategoryRestrictions,
		SellerRestrictions:   v.SellerRestrictions,
	}
}

func newClaim(c domain.Claim) Claim {
	return Claim{
		SN:        c.SN,
		VoucherID: c.VoucherID,
		Status:    c.Status.ToUint8(),
		ClaimedAt: c.ClaimedAt,
		UsedAt:    c.UsedAt,
		ExpiresAt: c.ExpiresAt,
	}
}
