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

package producer

import (
	"context"

	"github.com/ecodeclub/mq-api"
	"github.com/retrade/voucher/internal/pkg/mqx"
	"github.com/retrade/voucher/internal/voucher/internal/event"
)

//go:generate mockgen -source=./redemption_event_producer.go -package=evtmocks -destination=../mocks/redemption.mock.go -typed RedemptionEventProducer
type RedemptionEventProducer interface {
	Produce(ctx context.Context, evt event.RedemptionEvent) error
}

func NewRedemptionEventProducer(q mq.MQ) (RedemptionEventProducer, error) {
	return mqx.NewGeneralProducer[event.RedemptionEvent](q, event.RedemptionEventName)
}
