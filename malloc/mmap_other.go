//go:build !unix

package malloc

import "github.com/bnclabs/handles/api"

func newmmap(capacity int64) (api.Mallocer, error) {
	return nil, ErrUnsupported
}
