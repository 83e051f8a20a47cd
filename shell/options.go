package shell

import (
	"github.com/misteriaud/passeri"
)

// Options are the console command line options.
type Options struct {
	Config       string `short:"c" long:"config" description:"client config URL (yaml)"`
	Memory       bool   `short:"m" long:"memory" description:"use an in-process memory backend instead of a remote one"`
	Reactivation string `long:"reactivation" description:"policy for activating an already active bridge" choice:"forward" choice:"skip" choice:"reject" default:"forward"`
	passeri.ClientOptions
}
