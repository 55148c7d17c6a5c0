package test

import (
	"math/rand"
	"sync"
	"time"
)

const labelAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomDomainName returns a pseudo-random registrable domain under tld.
// The generated second-level label is 5 to 16 characters long and always
// starts and ends with an alphanumeric character.
func RandomDomainName(tld string) string {
	length := 5 + randomIntn(12)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = labelAlphabet[randomIntn(len(labelAlphabet))]
	}
	return string(buf) + "." + tld
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
