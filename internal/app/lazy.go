package app

import (
	"context"
	"sync"
)

// Lazy builds the container on first use, after cobra has parsed the flags
// that shape it.
type Lazy struct {
	Options Options

	once      sync.Once
	container *Container
	err       error
}

// Get returns the container, building it on the first call.
func (l *Lazy) Get(ctx context.Context) (*Container, error) {
	l.once.Do(func() {
		l.container, l.err = BuildContainer(ctx, l.Options)
	})
	return l.container, l.err
}

// Close releases the container if it was built.
func (l *Lazy) Close() error {
	if l.container == nil {
		return nil
	}
	return l.container.Close()
}
