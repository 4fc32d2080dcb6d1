package netmock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagDoneInitiallyFalse(t *testing.T) {
	var f Flag
	assert.False(t, f.Done())
}

func TestFlagDoneAfterMark(t *testing.T) {
	var f Flag
	assert.True(t, f.TryMark())
	assert.True(t, f.Done())
}

func TestFlagTryMarkConcurrentOnlyOneWinner(t *testing.T) {
	var f Flag
	var wg sync.WaitGroup
	wins := make(chan bool, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins <- f.TryMark()
		}()
	}
	wg.Wait()
	close(wins)

	winCount := 0
	for w := range wins {
		if w {
			winCount++
		}
	}
	assert.Equal(t, 1, winCount)
}
