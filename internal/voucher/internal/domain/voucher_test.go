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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoucher_DiscountFor(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		voucher    Voucher
		orderTotal int64
		want       int64
	}{
		{
			name:       "百分比折扣",
			voucher:    Voucher{Discount: Discount{Kind: DiscountKindPercentage, Magnitude: 10}},
			orderTotal: 10000,
			want:       1000,
		},
		{
			name:       "百分比折扣_零订单",
			voucher:    Voucher{Discount: Discount{Kind: DiscountKindPercentage, Magnitude: 10}},
			orderTotal: 0,
			want:       0,
		},
		{
			name:       "固定金额折扣",
			voucher:    Voucher{Discount: Discount{Kind: DiscountKindFixedAmount, Magnitude: 500}},
			orderTotal: 10000,
			want:       500,
		},
		{
			name:       "固定金额折扣_不超过订单总额",
			voucher:    Voucher{Discount: Discount{Kind: DiscountKindFixedAmount, Magnitude: 500}},
			orderTotal: 300,
			want:       300,
		},
		{
			name:       "未知折扣类型",
			voucher:    Voucher{Discount: Discount{Kind: DiscountKind(9), Magnitude: 500}},
			orderTotal: 300,
			want:       0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.voucher.DiscountFor(tc.orderTotal))
		})
	}
}

func TestVoucher_WithinWindow(t *testing.T) {
	t.Parallel()
	v := Voucher{StartDate: 100, ExpireDate: 200}
	assert.False(t, v.WithinWindow(99))
	assert.True(t, v.WithinWindow(100))
	assert.True(t, v.WithinWindow(199))
	assert.False(t, v.WithinWindow(200))
}

func TestVoucher_GlobalCapExhausted(t *testing.T) {
	t.Parallel()
	assert.False(t, Voucher{MaxUses: 0, CurrentUses: 100}.GlobalCapExhausted())
	assert.False(t, Voucher{MaxUses: 3, CurrentUses: 2}.GlobalCapExhausted())
	assert.True(t, Voucher{MaxUses: 3, CurrentUses: 3}.GlobalCapExhausted())
}

func TestVoucher_HasRestrictions(t *testing.T) {
	t.Parallel()
	assert.False(t, Voucher{}.HasRestrictions())
	assert.True(t, Voucher{ProductRestrictions: []string{"P1"}}.HasRestrictions())
	assert.True(t, Voucher{CategoryRestrictions: []string{"books"}}.HasRestrictions())
	assert.True(t, Voucher{SellerRestrictions: []string{"S1"}}.HasRestrictions())
}
