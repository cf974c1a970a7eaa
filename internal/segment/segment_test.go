package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"run docker compose up", []string{"run", "docker", "compose", "up"}},
		{"max_workers=4, retries: 3.", []string{"max_workers", "4", "retries", "3"}},
		{"安装docker服务", []string{"安装", "docker", "服务"}},
		{"部署，监控。", []string{"部署", "监控"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Fields{}.Tokenize(tt.text))
		})
	}
}

func TestTokenizerFunc(t *testing.T) {
	tok := TokenizerFunc(strings.Fields)
	assert.Equal(t, []string{"a", "b"}, tok.Tokenize(" a  b "))
}

func TestDropBlank(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dropBlank([]string{"a", " ", "\n", "b", ""}))
}

func TestDefaultIsShared(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the segmenter dictionary")
	}

	first := Default()
	second := Default()
	assert.Equal(t, first, second)

	tokens := first.Tokenize("docker compose")
	assert.Contains(t, tokens, "docker")
	assert.Contains(t, tokens, "compose")
	for _, tok := range tokens {
		assert.NotEmpty(t, strings.TrimSpace(tok))
	}
}
