// SPDX-License-Identifier: ice License 1.0
//go:build zerolog

package log

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/ice-blockchain/mixpanel/config"
)

// .
var (
	//nolint:gochecknoglobals // One logger per process, set up by init.
	logger *zerolog.Logger
)

//nolint:gochecknoinits // log is global, so it's initialization can be done in init
func init() {
	var appCfg cfg
	config.MustLoadFromKey("logger", &appCfg)
	configureZerolog()

	lgr, err := newZerolog(writerFor(appCfg.Encoder), appCfg.Level)
	if err != nil {
		panic(errors.Wrap(err, "failed to set up the logger"))
	}
	logger = lgr
	log.SetFlags(0)
	log.SetOutput(lgr)
}

func configureZerolog() {
	zerolog.DisableSampling(true)
	zerolog.ErrorStackMarshaler = stackOf //nolint:reassign // It is called by an init.
	zerolog.InterfaceMarshalFunc = json.Marshal
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

func writerFor(encoder string) io.Writer {
	if strings.EqualFold(encoder, "json") {
		return os.Stderr
	}

	return &zerolog.ConsoleWriter{
		Out:          os.Stderr,
		TimeFormat:   time.RFC3339Nano,
		PartsOrder:   []string{zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName},
		PartsExclude: []string{zerolog.ErrorStackFieldName, zerolog.CallerFieldName},
	}
}

func newZerolog(writer io.Writer, level string) (*zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid logger level `%v`", level)
	}
	lgr := zerolog.New(writer).With().Timestamp().Stack().Logger().Level(lvl)

	return &lgr, nil
}

// stackOf renders a pkg/errors stack as `file:line:func` frames joined by `<<`, without the runtime's own frames.
func stackOf(err error) any {
	frames, ok := pkgerrors.MarshalStack(err).([]map[string]string)
	if !ok || len(frames) <= stackFramesToSkip {
		return nil
	}
	var sb strings.Builder
	for i, frame := range frames[:len(frames)-stackFramesToSkip] {
		if i > 0 {
			sb.WriteString("<<")
		}
		sb.WriteString(frame[pkgerrors.StackSourceFileName])
		sb.WriteByte(':')
		sb.WriteString(frame[pkgerrors.StackSourceLineName])
		sb.WriteByte(':')
		sb.WriteString(frame[pkgerrors.StackSourceFunctionName])
	}

	return sb.String()
}

func withFields(event *zerolog.Event, fields []any) *zerolog.Event {
	if len(fields) > 0 {
		return event.Fields(fields)
	}

	return event
}

// send finishes events whose payload can be an error, a message or anything else.
func send(event *zerolog.Event, anything any) {
	switch obj := anything.(type) {
	case error:
		event.Err(obj).Send()
	case string:
		event.Err(errors.New(obj)).Send()
	default:
		event.Err(errors.Errorf("%#v", obj)).Send()
	}
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	withFields(logger.Err(err), fields).Send()
}

func Debug(msg string, fields ...any) {
	withFields(logger.Debug(), fields).Msg(msg)
}

func Info(msg string, fields ...any) {
	withFields(logger.Info(), fields).Msg(msg)
}

func Warn(msg string, fields ...any) {
	withFields(logger.Warn(), fields).Msg(msg)
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	send(withFields(logger.Fatal(), fields), anything)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	send(withFields(logger.Panic(), fields), anything)
}

func Level() string {
	return logger.GetLevel().String()
}
