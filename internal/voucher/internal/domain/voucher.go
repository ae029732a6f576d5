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

package domain

type DiscountKind uint8

const (
	// DiscountKindPercentage 按订单金额的百分比折扣,Magnitude 取值 [0,100]
	DiscountKindPercentage DiscountKind = 1
	// DiscountKindFixedAmount 固定金额折扣,单位为分
	DiscountKindFixedAmount DiscountKind = 2
)

func (k DiscountKind) ToUint8() uint8 {
	return uint8(k)
}

type Discount struct {
	Kind DiscountKind
	// Magnitude 百分比折扣时为整数百分比,固定金额折扣时单位为分
	Magnitude int64
}

// Voucher 优惠券模板,Code 全局唯一
// MaxUses/MaxUsesPerAccount 为 0 表示不限次数
type Voucher struct {
	ID                int64
	Code              string
	Name              string
	Description       string
	Discount          Discount
	StartDate         int64
	ExpireDate        int64
	Activated         bool
	MaxUses           int64
	MaxUsesPerAccount int64
	CurrentUses       int64
	// MinSpend 订单最低消费门槛,单位为分
	MinSpend             int64
	ProductRestrictions  []string
	CategoryRestrictions []string
	SellerRestrictions   []string
	Ctime                int64
	Utime                int64
}

// DiscountFor 计算订单可得的折扣金额,固定金额折扣不超过订单总额
func (v Voucher) DiscountFor(orderTotal int64) int64 {
	switch v.Discount.Kind {
	case DiscountKindPercentage:
		return orderTotal * v.Discount.Magnitude / 100
	case DiscountKindFixedAmount:
		if v.Discount.Magnitude > orderTotal {
			return orderTotal
		}
		return v.Discount.Magnitude
	default:
		return 0
	}
}

func (v Voucher) HasRestrictions() bool {
	return len(v.ProductRestrictions) > 0 ||
		len(v.CategoryRestrictions) > 0 ||
		len(v.SellerRestrictions) > 0
}

// WithinWindow 判断 now 是否落在 [StartDate, ExpireDate) 内
func (v Voucher) WithinWindow(now int64) bool {
	return now >= v.StartDate && now < v.ExpireDate
}

// GlobalCapExhausted 全局使用次数是否已耗尽,MaxUses 为 0 表示不限
func (v Voucher) GlobalCapExhausted() bool {
	return v.MaxUses > 0 && v.CurrentUses >= v.MaxUses
}

// VoucherFilter 管理端列表的类型化过滤条件,零值字段不参与过滤
type VoucherFilter struct {
	OnlyActivated bool
	Kind          DiscountKind
	CodePrefix    string
}

type ClaimStatus uint8

const (
	ClaimStatusClaimed ClaimStatus = 1
	ClaimStatusUsed    ClaimStatus = 2
	ClaimStatusExpired ClaimStatus = 3
)

func (s ClaimStatus) ToUint8() uint8 {
	return uint8(s)
}

// Claim 账号对某张优惠券的领取记录,每个 (账号, 优惠券) 至多一条
// ExpiresAt 在领取时从模板上冻结,模板后续修改不影响已领取记录
type Claim struct {
	ID        int64
	SN        string
	AccountID int64
	VoucherID int64
	Status    ClaimStatus
	ClaimedAt int64
	UsedAt    int64
	ExpiresAt int64
}

// ClaimedVoucher 领取记录及其对应的模板视图
type ClaimedVoucher struct {
	Claim   Claim
	Voucher Voucher
}

type RedemptionOutcome uint8

const (
	RedemptionOutcomeSuccess RedemptionOutcome = 1
	RedemptionOutcomeFailure RedemptionOutcome = 2
)

func (o RedemptionOutcome) ToUint8() uint8 {
	return uint8(o)
}

// Redemption 核销流水,OrderSN 全局唯一,是幂等键
type Redemption struct {
	ID              int64
	OrderSN         string
	AccountID       int64
	VoucherID       int64
	ClaimID         int64
	DiscountApplied int64
	Outcome         RedemptionOutcome
	Reason          Reason
	Ctime           int64
	Utime           int64
}

// Reason 业务不可用原因,作为普通返回值参与控制流,不是错误
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonVoucherNotFound      Reason = "VOUCHER_NOT_FOUND"
	ReasonVoucherInactive      Reason = "VOUCHER_INACTIVE"
	ReasonVoucherNotStarted    Reason = "VOUCHER_NOT_STARTED"
	ReasonVoucherExpired       Reason = "VOUCHER_EXPIRED"
	ReasonSpendTooLow          Reason = "SPEND_TOO_LOW"
	ReasonGlobalCapReached     Reason = "GLOBAL_CAP_REACHED"
	ReasonAccountCapReached    Reason = "ACCOUNT_CAP_REACHED"
	ReasonNotApplicableToOrder Reason = "NOT_APPLICABLE_TO_ORDER"
	ReasonNotClaimed           Reason = "NOT_CLAIMED"
	ReasonClaimExpired         Reason = "CLAIM_EXPIRED"
	ReasonDuplicateClaim       Reason = "DUPLICATE_CLAIM"
)

// Quote validate 的只读报价结果
type Quote struct {
	VoucherID      int64
	Code           string
	Valid          bool
	Reason         Reason
	DiscountAmount int64
}

// RedemptionResult apply 的核销结果
type RedemptionResult struct {
	OrderSN        string
	Valid          bool
	Reason         Reason
	DiscountAmount int64
}
