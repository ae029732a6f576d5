package dao

import (
	"github.com/gotomicro/ego/core/elog"
	"github.com/retrade/voucher/internal/pkg/snowflake"
	"gorm.io/gorm"
)

// UsageInsertCallBackBuilder 在核销流水落库前用雪花ID填充主键,
// 保证流水ID在多实例部署下全局唯一
type UsageInsertCallBackBuilder struct {
	logger  *elog.Component
	idMaker snowflake.Generator
}

func NewUsageInsertCallBackBuilder(nodeId int64) (*UsageInsertCallBackBuilder, error) {
	idMaker, err := snowflake.NewNodeGenerator(nodeId)
	if err != nil {
		return nil, err
	}
	return &UsageInsertCallBackBuilder{
		logger:  elog.DefaultLogger,
		idMaker: idMaker,
	}, nil
}

func (u *UsageInsertCallBackBuilder) Build() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		usage, ok := db.Statement.Dest.(*VoucherUsage)
		if !ok {
			return
		}
		if usage.Id == 0 {
			usage.Id = u.idMaker.Generate().Int64()
		}
		db.Statement.Dest = usage
	}
}
