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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retrade/voucher/internal/product"
	"github.com/retrade/voucher/internal/voucher/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubProductService struct {
	products []product.Product
	err      error
	called   bool
}

func (s *stubProductService) FindBySN(_ context.Context, _ string) (product.Product, error) {
	return product.Product{}, errors.New("未实现")
}

func (s *stubProductService) FindInfoBySNs(_ context.Context, _ []string) ([]product.Product, error) {
	s.called = true
	return s.products, s.err
}

func (s *stubProductService) Save(_ context.Context, _ product.Product) (string, error) {
	return "", errors.New("未实现")
}

func TestRestrictionMatcher_Matches(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		voucher    domain.Voucher
		productSNs []string
		stub       *stubProductService
		want       bool
		wantCalled bool
	}{
		{
			name:       "无任何限制_普适",
			voucher:    domain.Voucher{Code: "SAVE10"},
			productSNs: []string{"P1", "P2"},
			stub:       &stubProductService{},
			want:       true,
		},
		{
			name:       "无任何限制_空订单也普适",
			voucher:    domain.Voucher{Code: "SAVE10"},
			productSNs: nil,
			stub:       &stubProductService{},
			want:       true,
		},
		{
			name: "商品限制命中_不用调商品服务",
			voucher: domain.Voucher{
				Code:                "P1ONLY",
				ProductRestrictions: []string{"P1"},
			},
			productSNs: []string{"P2", "P1"},
			stub:       &stubProductService{},
			want:       true,
		},
		{
			name: "商品限制未命中_无其他限制",
			voucher: domain.Voucher{
				Code:                "P1ONLY",
				ProductRestrictions: []string{"P1"},
			},
			productSNs: []string{"P2"},
			stub:       &stubProductService{},
			want:       false,
		},
		{
			name: "类目限制命中",
			voucher: domain.Voucher{
				Code:                 "BOOKS",
				CategoryRestrictions: []string{"books"},
			},
			productSNs: []string{"P1"},
			stub: &stubProductService{
				products: []product.Product{
					{SN: "P1", SellerSN: "S9", Categories: []string{"toys", "books"}},
				},
			},
			want:       true,
			wantCalled: true,
		},
		{
			name: "卖家限制命中",
			voucher: domain.Voucher{
				Code:               "SELLER1",
				SellerRestrictions: []string{"S1"},
			},
			productSNs: []string{"P1", "P2"},
			stub: &stubProductService{
				products: []product.Product{
					{SN: "P2", SellerSN: "S1"},
				},
			},
			want:       true,
			wantCalled: true,
		},
		{
			name: "OR语义_商品未命中但类目命中",
			voucher: domain.Voucher{
				Code:                 "MIXED",
				ProductRestrictions:  []string{"P9"},
				CategoryRestrictions: []string{"books"},
			},
			productSNs: []string{"P1"},
			stub: &stubProductService{
				products: []product.Product{
					{SN: "P1", Categories: []string{"books"}},
				},
			},
			want:       true,
			wantCalled: true,
		},
		{
			name: "解析失败_失败关闭",
			voucher: domain.Voucher{
				Code:                 "BOOKS",
				CategoryRestrictions: []string{"books"},
			},
			productSNs: []string{"P1"},
			stub:       &stubProductService{err: errors.New("模拟超时")},
			want:       false,
			wantCalled: true,
		},
		{
			name: "部分解析_未解析的SN不放水",
			voucher: domain.Voucher{
				Code:                 "BOOKS",
				CategoryRestrictions: []string{"books"},
			},
			productSNs: []string{"P1", "P2"},
			stub: &stubProductService{
				products: []product.Product{
					{SN: "P1", Categories: []string{"toys"}},
				},
			},
			want:       false,
			wantCalled: true,
		},
		{
			name: "有限制但订单为空",
			voucher: domain.Voucher{
				Code:                 "BOOKS",
				CategoryRestrictions: []string{"books"},
			},
			productSNs: nil,
			stub:       &stubProductService{},
			want:       false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			matcher := NewRestrictionMatcher(tc.stub, 50*time.Millisecond)
			got := matcher.Matches(context.Background(), tc.voucher, tc.productSNs)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantCalled, tc.stub.called)
		})
	}
}
