package iorecipe

import (
	"fmt"
	"runtime"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
)

func RecipeConfigError(path string, err error) error {
	msg := "Recipe <em>%s</em> is not usable"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecipeConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad recipe: %w",
			fn, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read recipe <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
