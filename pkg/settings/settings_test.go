package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	got := NewCliParams("./log.json")
	assert.Equal(t, &Run{File: "./log.json", LogLevel: "info"}, got)
}
