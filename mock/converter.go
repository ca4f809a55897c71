package mock

import "github.com/fwojciec/dashdoc"

var _ dashdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of dashdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
