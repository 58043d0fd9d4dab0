package iocurate

import (
	"fmt"
	"runtime"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
)

func SegmentsNotFoundError(dir, suffix string) error {
	msg := "No <em>*%s</em> files in <em>%s</em>"
	vars := []any{suffix, dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no segment files in %s",
			fn, dir),
	}
}

func RebalanceError(group string, err error) error {
	msg := "Cannot rebalance <em>%s</em>"
	vars := []any{group}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RebalanceEmptyBucketError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: rebalancing failed: %w",
			fn, err),
	}
}
