package model

import (
	"encoding/gob"
	"sync"

	"github.com/plugfox/foxy-fib/internal/fib"
)

var registerOnce sync.Once

// InitHashFunction - register the model types for gob serialization, safe to call repeatedly
func InitHashFunction() {
	registerOnce.Do(func() {
		gob.Register(ResultID(0))
		gob.Register(Source(""))
		gob.Register(fib.Algorithm(""))
	})
}
