package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type BaseLogger struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	exit   func(code int)
}

func NewLogger(writer io.Writer, prefix string) *BaseLogger {
	return &BaseLogger{
		writer: writer,
		prefix: prefix,
		exit:   os.Exit,
	}
}

// Log writes the message to the configured writer and duplicates it to the console.
func (l *BaseLogger) Log(format string, v ...interface{}) {
	l.print("", format, v...)
}

func (l *BaseLogger) Error(format string, v ...interface{}) {
	l.print("ERROR", format, v...)
}

// FatalLog logs the message and terminates the process.
func (l *BaseLogger) FatalLog(format string, v ...interface{}) {
	l.print("FATAL", format, v...)
	l.exit(1)
}

func (l *BaseLogger) print(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, v...)
	if level != "" {
		message = level + " " + message
	}
	if l.prefix != "" {
		message = l.prefix + " " + message
	}
	if l.writer != nil {
		fmt.Fprintln(l.writer, message)
	}
	log.Print(message)
}

func (l *BaseLogger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}
