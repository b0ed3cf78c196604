package cli

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApp_LoginStateIsConcurrencySafe(t *testing.T) {
	// login flips the flag on the REPL goroutine while watchEvents reads it
	// on every connectivity edge and wake
	a := &App{}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				a.setLoggedIn(j%2 == 0)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				a.isLoggedIn()
				a.stopFeed()
			}
		}()
	}
	wg.Wait()
}

func TestApp_StopFeedCancelsAndIsIdempotent(t *testing.T) {
	a := &App{}

	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	a.feedCancel = cancel
	a.mu.Unlock()

	a.stopFeed()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("feed context must be canceled")
	}

	// a second stop with nothing running is a no-op
	a.stopFeed()
	assert.Nil(t, a.feedCancel)
}
