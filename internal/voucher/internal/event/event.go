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

package event

const RedemptionEventName = "voucher_redemption_events"

// RedemptionEvent 核销成功后对外广播,订单侧据此扣减应付金额
type RedemptionEvent struct {
	Key            string `json:"key"`
	OrderSN        string `json:"orderSN"`
	AccountID      int64  `json:"accountId"`
	VoucherID      int64  `json:"voucherId"`
	Code           string `json:"code"`
	DiscountAmount int64  `json:"discountAmount"`
}

func (e RedemptionEvent) MessageKey() string {
	return e.Key
}
