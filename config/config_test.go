package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, []string{"D-RMN", "MNG", "İNG"}, normalizeList([]string{" D-RMN, MNG ,,İNG"}))
	assert.Equal(t, []string{"a", "b"}, normalizeList([]string{"a", "b"}))
	assert.Equal(t, DefaultSpinCategories, normalizeList(nil))
	assert.Equal(t, DefaultSpinCategories, normalizeList([]string{" , "}))
}

func TestSpinLocation(t *testing.T) {
	defer func(prev string) { AppConfig.SpinTimezone = prev }(AppConfig.SpinTimezone)

	AppConfig.SpinTimezone = ""
	assert.Equal(t, time.UTC, SpinLocation())

	AppConfig.SpinTimezone = "Not/AZone"
	assert.Equal(t, time.UTC, SpinLocation())

	AppConfig.SpinTimezone = "UTC"
	assert.Equal(t, "UTC", SpinLocation().String())
}
