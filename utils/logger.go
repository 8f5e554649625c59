package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type LogLevel int

const (
	LogLevelError = LogLevel(1 << iota)
	LogLevelInfo
	LogLevelNotice
	LogLevelDebug
)

const LogLevelAll = LogLevelError | LogLevelInfo | LogLevelNotice | LogLevelDebug

// LogFile includes the caller file and line on each entry
var LogFile bool

// LogFunc includes the caller function name, requires LogFile
var LogFunc bool

var globalLogLevel atomic.Int64

var logOutput struct {
	lock sync.Mutex
	w    io.Writer
}

//nolint:gochecknoinits
func init() {
	globalLogLevel.Store(int64(LogLevelError | LogLevelInfo))
	logOutput.w = os.Stderr
	logBufPool.New = func() any {
		return make([]byte, 0, 256)
	}
}

var logBufPool sync.Pool

// SetLogLevel replaces the active level mask
func SetLogLevel(level LogLevel) {
	globalLogLevel.Store(int64(level))
}

func GetLogLevel() LogLevel {
	return LogLevel(globalLogLevel.Load())
}

// ParseLogLevel reads a comma separated list of level names, or "all" / "none"
func ParseLogLevel(s string) (LogLevel, error) {
	var level LogLevel
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "none":
			level = 0
		case "all":
			level = LogLevelAll
		case "error":
			level |= LogLevelError
		case "info":
			level |= LogLevelInfo
		case "notice":
			level |= LogLevelNotice
		case "debug":
			level |= LogLevelDebug
		default:
			return 0, fmt.Errorf("unknown log level %q", name)
		}
	}
	return level, nil
}

// SetLogOutput redirects all log entries to w. A nil writer discards them.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logOutput.lock.Lock()
	defer logOutput.lock.Unlock()
	logOutput.w = w
}

func enabled(level LogLevel) bool {
	return LogLevel(globalLogLevel.Load())&level != 0
}

func getLogBuf() []byte {
	//nolint:forcetypeassert
	return logBufPool.Get().([]byte)[:0]
}

func returnLogBuf(buf []byte) {
	//nolint:staticcheck
	logBufPool.Put(buf)
}

func Panicf(prefix, format string, v ...any) {
	buf := getLogBuf()
	defer returnLogBuf(buf)
	buf = fmt.Appendf(innerPrint(buf, prefix, "PANIC"), format, v...)
	_println(buf)
	panic(string(buf))
}

func Errorf(prefix, format string, v ...any) {
	if !enabled(LogLevelError) {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "ERROR"), format, v...))
}

func Logf(prefix, format string, v ...any) {
	if !enabled(LogLevelInfo) {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "INFO"), format, v...))
}

func Noticef(prefix, format string, v ...any) {
	if !enabled(LogLevelNotice) {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "NOTICE"), format, v...))
}

func IsLogLevelDebug() bool {
	return enabled(LogLevelDebug)
}

func Debugf(prefix, format string, v ...any) {
	if !enabled(LogLevelDebug) {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "DEBUG"), format, v...))
}

func _println(buf []byte) {
	buf = bytes.TrimSpace(buf)
	buf = append(buf, '\n')

	logOutput.lock.Lock()
	defer logOutput.lock.Unlock()
	_, _ = logOutput.w.Write(buf)
}

func lastPathElement(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func innerPrint(buf []byte, prefix, class string) []byte {
	buf = time.Now().UTC().AppendFormat(buf, "2006-01-02 15:04:05.000")
	if !LogFile {
		return fmt.Appendf(buf, " [%s] %s ", prefix, class)
	}

	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line, pc = "???", 0, 0
	}

	if LogFunc && pc != 0 {
		if details := runtime.FuncForPC(pc); details != nil {
			funcItems := strings.Split(lastPathElement(details.Name()), ".")
			return fmt.Appendf(buf, " %s:%d:%s [%s] %s ", lastPathElement(file), line, funcItems[len(funcItems)-1], prefix, class)
		}
	}
	return fmt.Appendf(buf, " %s:%d [%s] %s ", lastPathElement(file), line, prefix, class)
}
