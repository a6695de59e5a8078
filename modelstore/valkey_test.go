package modelstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "twitsent:model:model_go1_maxent1", Key("model_go1_maxent1"))
}

func TestDialValkeyUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := DialValkey(ctx, ValkeyOptions{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
