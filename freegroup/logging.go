package freegroup

import (
	"flag"
	"strconv"

	"github.com/plan-systems/klog"
)

// InitLogging routes klog to stderr at the given verbosity.
func InitLogging(opts LogOpts) {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(opts.Verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          opts.UseColor,
	})
}
