package credstore

import "time"

const DefaultPath = "/"

// Options scope an entry and bound its lifetime, the way cookie attributes do.
type Options struct {
	Path    string        // scope of the entry; "/" when empty
	Expires time.Duration // lifetime from the moment of Set
}

// normalize applies safe defaults without breaking callers
func (o Options) normalize() Options {
	if o.Path == "" {
		o.Path = DefaultPath
	}
	return o
}

func validate(name string, opts Options, forSet bool) error {
	if name == "" {
		return ErrInvalidKey
	}
	if forSet && opts.Expires <= 0 {
		return ErrInvalidExpiry
	}
	return nil
}
