package main

import (
	"context"
	"encoding/base64"
	"flag"
	"os"
	"os/signal"
	"syscall"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/output"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/task"
	"github.com/tsinghua-fib-lab/agentsociety-highway-planner/utils/config"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")

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

	log = logrus.WithField("module", "planner-main")
)

// newRecorder 按输出配置创建决策记录输出，未配置时返回nil
func newRecorder(ctx context.Context, c config.Output) (output.Recorder, error) {
	var m output.Multi
	if c.Mongo != nil {
		rec, err := output.NewMongoRecorder(ctx, c.Mongo.URI, c.Mongo.DB, c.Mongo.Col)
		if err != nil {
			return nil, err
		}
		m = append(m, rec)
	}
	if c.SQLite != nil {
		rec, err := output.NewSQLiteRecorder(c.SQLite.Path)
		if err != nil {
			_ = m.Close(ctx)
			return nil, err
		}
		m = append(m, rec)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

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
	} else {
		log.Panic("config file or config data must be specified")
	}
	c, err := config.Load(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, err := newRecorder(ctx, c.Output)
	if err != nil {
		log.Panicf("output init err: %v", err)
	}
	t, err := task.NewContext(c, recorder)
	if err != nil {
		log.Panicf("task init err: %v", err)
	}
	runErr := t.Run(ctx)
	if err := t.Close(context.Background()); err != nil {
		log.Errorf("output close err: %v", err)
	}
	if runErr != nil {
		log.Fatalf("run %s err: %v", t.RunID(), runErr)
	}
}
