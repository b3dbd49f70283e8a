package job

import (
	"sync"
	"testing"
)

func TestToken(t *testing.T) {
	tok := NewToken()

	if tok.Stopped() {
		t.Error("fresh token must not report stopped")
	}

	tok.Stop()
	if !tok.Stopped() {
		t.Error("token must report stopped after Stop")
	}

	// Stop is idempotent
	tok.Stop()
	if !tok.Stopped() {
		t.Error("token must stay stopped")
	}
}

func TestTokenConcurrentStop(t *testing.T) {
	tok := NewToken()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok.Stop()
		}()
	}
	wg.Wait()

	if !tok.Stopped() {
		t.Error("token must report stopped after concurrent Stop calls")
	}
}
