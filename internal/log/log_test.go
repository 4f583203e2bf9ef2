package log

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogContext(t *testing.T) {
	ctx := WithLogField(context.Background(), "source", "sigs.json")
	assert.Equal(t, "sigs.json", L(ctx).Data["source"])

	assert.Equal(t, rootLogger, L(context.Background()))
}

func TestLogContextLimited(t *testing.T) {
	ctx := WithLogField(context.Background(), "source", strings.Repeat("x", 100))
	assert.Equal(t, strings.Repeat("x", 61)+"...", L(ctx).Data["source"])
}

func TestSettingErrorLevel(t *testing.T) {
	SetLevel("eRrOr")
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}

func TestSettingLevels(t *testing.T) {
	for level, want := range map[string]logrus.Level{
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"debug":   logrus.DebugLevel,
		"trace":   logrus.TraceLevel,
		"info":    logrus.InfoLevel,
		"other":   logrus.InfoLevel,
	} {
		SetLevel(level)
		assert.Equal(t, want, logrus.GetLevel(), level)
	}
}

func TestInitConfigFormats(t *testing.T) {
	InitConfig(&Config{Level: "debug", Format: "json", UTC: true})
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &utcFormat{}, logrus.StandardLogger().Formatter)

	InitConfig(&Config{Format: "detailed"})
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
	assert.True(t, logrus.StandardLogger().ReportCaller)

	InitConfig(&Config{})
	assert.False(t, logrus.StandardLogger().ReportCaller)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
