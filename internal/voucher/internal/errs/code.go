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

package errs

var (
	SystemError     = ErrorCode{Code: 512001, Msg: "系统错误"}
	VoucherNotFound = ErrorCode{Code: 512002, Msg: "优惠券不存在"}
	DuplicateCode   = ErrorCode{Code: 512003, Msg: "优惠券编码已存在"}
	DuplicateClaim  = ErrorCode{Code: 512004, Msg: "已领取过该优惠券"}
	InvalidRule     = ErrorCode{Code: 512005, Msg: "优惠规则非法"}
	NotClaimable    = ErrorCode{Code: 512006, Msg: "优惠券当前不可领取"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
