package ioesc50

import (
	"fmt"
	"runtime"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
)

func ESC50FoldError(path string, err error) error {
	msg := "Cannot build ESC-50 folds from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ESC50FoldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot build folds: %w",
			fn, err),
	}
}
