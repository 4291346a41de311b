package tempest

import "github.com/rs/zerolog"

// WorldOption augments how a World is constructed.
type WorldOption func(*World)

// WithChunkBytes overrides the per-chunk component storage budget used
// to size archetype chunks.
func WithChunkBytes(n int) WorldOption {
	return func(w *World) {
		if n > 0 {
			w.cfg.ChunkBytes = n
		}
	}
}

// WithLogger replaces the world's logger.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// WithHooks installs lifecycle hooks. Nil members stay no-ops.
func WithHooks(h Hooks) WorldOption {
	return func(w *World) {
		w.hooks = h
	}
}

// WithStatsdAddress points structural-change metrics at a statsd agent.
// Without it metrics stay on the no-op client.
func WithStatsdAddress(addr string) WorldOption {
	return func(w *World) {
		w.cfg.StatsdAddress = addr
	}
}
