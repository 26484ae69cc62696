// Package autoload initializes the global zerolog logger from the LOG_*
// environment variables. Import it for its side effect:
//
//	import _ "github.com/shopai/assistant/pkg/logger/autoload"
package autoload

import (
	configx "github.com/shopai/assistant/pkg/config"
	logx "github.com/shopai/assistant/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
