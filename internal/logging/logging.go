package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Configure sets up the process-wide logrus logger. An unknown level falls
// back to WARN.
func Configure(level string) {
	ConfigureOutput(level, os.Stdout)
}

func ConfigureOutput(level string, out io.Writer) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithField("level", level).Error("Invalid logging level, using WARN")
		lvl = logrus.WarnLevel
	}
	logrus.SetLevel(lvl)
}

func WithComponent(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

func Auth() *logrus.Entry { return WithComponent("auth") }

func DB() *logrus.Entry { return WithComponent("db") }

func HTTP() *logrus.Entry { return WithComponent("http") }

func Audit() *logrus.Entry { return WithComponent("audit") }

func CLI() *logrus.Entry { return WithComponent("cli") }
