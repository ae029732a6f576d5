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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/retrade/voucher/internal/voucher/internal/service"
)

// ExpireClaimsJob 把已过期但仍处于已领取状态的记录批量标记为过期
type ExpireClaimsJob struct {
	svc     service.Service
	limit   int
	timeout time.Duration
}

func NewExpireClaimsJob(svc service.Service, limit int, timeout time.Duration) *ExpireClaimsJob {
	return &ExpireClaimsJob{svc: svc, limit: limit, timeout: timeout}
}

func (e *ExpireClaimsJob) Name() string {
	return "ExpireClaimsJob"
}

func (e *ExpireClaimsJob) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, e.timeout)
	defer cancelFunc()
	now := time.Now().UnixMilli()

	for {
		rows, err := e.svc.ExpireClaims(ctx, now, e.limit)
		if err != nil {
			return fmt.Errorf("过期优惠券领取记录失败: %w", err)
		}
		if rows < int64(e.limit) {
			break
		}
	}
	return nil
}
