// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"slices"

	"github.com/pkg/errors"
)

func New(err error, data map[string]any) *Err {
	return &Err{error: err, Data: data}
}

func As(err error) *Err {
	tErr := new(Err)
	if ok := errors.As(err, tErr); ok {
		return tErr
	}

	return nil
}

// Fields returns the data of the first *Err in the chain of err as key/value pairs, sorted by key.
func Fields(err error) []any {
	tErr := As(err)
	if tErr == nil || len(tErr.Data) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tErr.Data))
	for k := range tErr.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fields := make([]any, 0, 2*len(keys)) //nolint:mnd,gomnd // Key and value.
	for _, k := range keys {
		fields = append(fields, k, tErr.Data[k])
	}

	return fields
}

func (e *Err) Is(er error) bool {
	return errors.Is(er, e.error)
}

func (e *Err) Unwrap() error {
	return e.error
}

func (e *Err) As(err any) bool {
	o, ok := err.(*Err)
	if ok {
		*o = *e
	}

	return ok
}
