package state

import "github.com/rs/zerolog"

// Logging returns a Middleware that logs every action at debug level.
func Logging(log zerolog.Logger) Middleware {
	return func(a Action, proposed Data, current State) (Data, error) {
		log.Debug().
			Str("action", a.Type.String()).
			Uint64("version", current.Version).
			Msg("perform")
		return proposed, nil
	}
}
