package render

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ajbenz18/nfl-analysis/src/logging"
)

var _ chart.Logger = chartLogger{}

// chartLogger forwards go-chart's layout tracing to the debug log.
type chartLogger struct {
	lg logging.Logger
}

func (c chartLogger) Info(a ...interface{})             { c.lg.Debugf("%s", fmt.Sprint(a...)) }
func (c chartLogger) Infof(f string, a ...interface{})  { c.lg.Debugf(f, a...) }
func (c chartLogger) Debug(a ...interface{})            { c.lg.Debugf("%s", fmt.Sprint(a...)) }
func (c chartLogger) Debugf(f string, a ...interface{}) { c.lg.Debugf(f, a...) }
func (c chartLogger) Err(err error)                     { c.lg.Errorf("%v", err) }
func (c chartLogger) FatalErr(err error)                { c.lg.Errorf("%v", err) }
func (c chartLogger) Error(a ...interface{})            { c.lg.Errorf("%s", fmt.Sprint(a...)) }
func (c chartLogger) Errorf(f string, a ...interface{}) { c.lg.Errorf(f, a...) }

// chartLog returns a go-chart logger when debug logging is on, nil otherwise.
func chartLog() chart.Logger {
	if logging.GetLogLevel() > logging.LevelDebug {
		return nil
	}
	return chartLogger{lg: logging.For("chart")}
}
