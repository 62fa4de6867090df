package service

import (
	"time"

	"github.com/alexedwards/argon2id"
)

type options struct {
	now        func() time.Time
	ids        *IDGenerator
	hashParams *argon2id.Params
}

type Option func(*options)

// WithClock replaces time.Now for timestamps, ids and "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator shares one id sequence between services.
func WithIDGenerator(g *IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithHashParams overrides the argon2id cost, mostly for tests.
func WithHashParams(p *argon2id.Params) Option {
	return func(o *options) { o.hashParams = p }
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, hashParams: argon2id.DefaultParams}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = NewIDGenerator(o.now)
	}
	return o
}
