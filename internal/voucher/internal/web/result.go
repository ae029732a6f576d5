package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/retrade/voucher/internal/voucher/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	voucherNotFoundResult = ginx.Result{
		Code: errs.VoucherNotFound.Code,
		Msg:  errs.VoucherNotFound.Msg,
	}
	duplicateCodeResult = ginx.Result{
		Code: errs.DuplicateCode.Code,
		Msg:  errs.DuplicateCode.Msg,
	}
	duplicateClaimResult = ginx.Result{
		Code: errs.DuplicateClaim.Code,
		Msg:  errs.DuplicateClaim.Msg,
	}
	invalidRuleResult = ginx.Result{
		Code: errs.InvalidRule.Code,
		Msg:  errs.InvalidRule.Msg,
	}
	notClaimableResult = ginx.Result{
		Code: errs.NotClaimable.Code,
		Msg:  errs.NotClaimable.Msg,
	}
)
