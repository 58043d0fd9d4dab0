package iodownload

import (
	"fmt"
	"runtime"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/gnames/gn"
)

func SetupError(path string, err error) error {
	msg := "Cannot prepare download of <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadSetupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: download setup failed: %w",
			fn, err),
	}
}

func AuthRefreshError(id string, err error) error {
	msg := "Credential refresh failed while downloading <em>%s</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadAuthRefreshError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot refresh credentials: %w",
			fn, err),
	}
}

func ProviderBanError(id string, err error) error {
	msg := "Provider stopped serving content at <em>%s</em>, run halted"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadProviderBanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: provider ban: %w",
			fn, err),
	}
}

func JournalError(path string, err error) error {
	msg := "Cannot use download journal <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadJournalError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: journal failed: %w",
			fn, err),
	}
}

func ReportError(path string, err error) error {
	msg := "Cannot write report <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadReportError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write report: %w",
			fn, err),
	}
}
