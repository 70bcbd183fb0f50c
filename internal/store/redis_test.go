package store_test

import (
	"testing"

	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestSuitableEvictionPolicy(t *testing.T) {
	tests := []struct {
		policy string
		want   bool
	}{
		{"allkeys-lru", true},
		{"allkeys-lfu", true},
		{"volatile-lru", false},
		{"volatile-lfu", false},
		{"volatile-ttl", false},
		{"allkeys-random", false},
		{"noeviction", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			assert.Equal(t, tt.want, store.SuitableEvictionPolicy(tt.policy))
		})
	}
}
