package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/parking-sim-oss/entity"
	"github.com/tsinghua-fib-lab/parking-sim-oss/env"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/parking-sim-oss/utils/randengine"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径，为空则使用内置默认配置
	configPath = flag.String("config", "", "config file path (empty means built-in defaults)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 随机数种子，第i个回合使用seed+i作为种子
	seed = flag.Uint64("seed", 0, "random seed, episode i is seeded with seed+i")
	// 运行的回合数
	episodes = flag.Int("episodes", 10, "number of episodes to run")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "parking")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	c := config.Default()
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	if len(file) > 0 {
		if err := yaml.UnmarshalStrict(file, &c); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	}
	log.Infof("%+v", c)

	e, err := env.New(c)
	if err != nil {
		log.Panicf("env create err: %v", err)
	}

	// 随机策略驱动环境跑若干回合，策略自身的随机数与环境种子分离
	policy := randengine.New(*seed + 1000000007)
	continuous := c.Env.ActionType == "continuous"
	for i := 0; i < *episodes; i++ {
		e.Reset(*seed + uint64(i))
		var last *env.StepResult
		for {
			var action entity.Action
			if continuous {
				action = entity.ContinuousAction{
					policy.Uniform(-1, 1),
					policy.Uniform(-1, 1),
				}
			} else {
				action = entity.DiscreteAction(policy.Intn(6))
			}
			res, err := e.Step(action)
			if err != nil {
				log.Panicf("step err: %v", err)
			}
			last = res
			if res.Terminated || res.Truncated {
				break
			}
		}
		log.Infof("episode %d: side=%v steps=%d reward=%.3f terminated=%v truncated=%v",
			i, e.Side(), last.Info.Step, last.Reward, last.Terminated, last.Truncated)
	}
}
