package iolabels

import (
	"fmt"
	"runtime"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
)

func FileNotFoundError(path string, err error) error {
	msg := "Labels file <em>%s</em> not found"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: labels file not found: %w",
			fn, err),
	}
}

func LabelsParseError(path string, err error) error {
	msg := "Cannot parse labels file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LabelsParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse labels: %w",
			fn, err),
	}
}
