package logger

import (
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

const DebugEnv = "RESTRUCT_DEBUG"

var logger = zap.NewNop().Sugar()

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

func Init(debug bool) {
	if !debug {
		envDebug := strings.ToLower(os.Getenv(DebugEnv))
		debug = len(envDebug) > 0 && !(envDebug == "disable" || envDebug == "false")
	}

	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	l, err := config.Build()
	if err != nil {
		log.Fatal(err)
	}

	zap.ReplaceGlobals(l)
	logger = zap.S()
}

func Debugw(msg string, keysAndValues ...interface{}) {
	logger.Debugw(msg, keysAndValues...)
}

func Debugf(template string, args ...interface{}) {
	logger.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	logger.Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	logger.Warnf(template, args...)
}

// Dump logs a deep dump of the value at debug level.
func Dump(msg string, value any) {
	if logger.Desugar().Core().Enabled(zap.DebugLevel) {
		logger.Debugw(msg, "value", dumper.Sdump(value))
	}
}
