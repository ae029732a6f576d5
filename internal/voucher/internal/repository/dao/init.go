package dao

import (
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func InitTables(db *egorm.Component) error {
	// 多实例部署时每个实例配置不同的节点ID,避免雪花ID撞车
	insertBuilder, err := NewUsageInsertCallBackBuilder(econf.GetInt64("voucher.snowflake.nodeId"))
	if err != nil {
		return err
	}
	err = db.Callback().Create().Before("*").Register("voucher_usage_create", insertBuilder.Build())
	if err != nil {
		return err
	}
	return db.AutoMigrate(
		&Voucher{},
		&VoucherProductRestriction{},
		&VoucherCategoryRestriction{},
		&VoucherSellerRestriction{},
		&VoucherVault{},
		&VoucherUsage{},
	)
}
