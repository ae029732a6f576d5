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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
)

type VoucherCache interface {
	GetVoucher(ctx context.Context, code string) (domain.Voucher, error)
	SetVoucher(ctx context.Context, v domain.Voucher) error
	DelVoucher(ctx context.Context, code string) error
}

type VoucherECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewVoucherECache(ec ecache.Cache, expiration time.Duration) VoucherCache {
	return &VoucherECache{
		ec: &ecache.NamespaceCache{
			Namespace: "voucher:template:",
			C:         ec,
		},
		expiration: expiration,
	}
}

func (q *VoucherECache) GetVoucher(ctx context.Context, code string) (domain.Voucher, error) {
	var res domain.Voucher
	val, err := q.ec.Get(ctx, q.codeKey(code)).AsString()
	if err != nil {
		return domain.Voucher{}, err
	}
	err = json.Unmarshal([]byte(val), &res)
	return res, errors.Wrap(err, "反序列化优惠券失败")
}

func (q *VoucherECache) SetVoucher(ctx context.Context, v domain.Voucher) error {
	val, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "序列化优惠券失败")
	}
	return q.ec.Set(ctx, q.codeKey(v.Code), string(val), q.expiration)
}

func (q *VoucherECache) DelVoucher(ctx context.Context, code string) error {
	_, err := q.ec.Delete(ctx, q.codeKey(code))
	return err
}

// 注意 Namespace 设置
func (q *VoucherECache) codeKey(code string) string {
	return fmt.Sprintf("code:%s", code)
}
