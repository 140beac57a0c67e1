package opts

import (
	"github.com/walteh/accsend/pkg/config"
	"github.com/walteh/accsend/pkg/log"
	"github.com/walteh/accsend/pkg/operation"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	Config   *config.Config
	Operator operation.Operator
	Console  *log.Logger
}
