package scenario

import "github.com/sirupsen/logrus"

// log 场景生成模块的日志记录器
var log = logrus.WithField("module", "scenario")
