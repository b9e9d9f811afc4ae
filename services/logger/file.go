package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// UseLogFile tees the standard logger into dir/app-YYYY-MM-DD.log.
// The caller closes the returned file on shutdown.
func UseLogFile(dir string, now time.Time) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	name := filepath.Join(dir, fmt.Sprintf("app-%s.log", now.Format("2006-01-02")))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return logFile, nil
}
