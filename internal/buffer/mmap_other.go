//go:build !unix && !windows

package buffer

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("memory mapping is not supported on this platform")

func mmapFile(_ *os.File, _ int64) ([]byte, error) {
	return nil, errMmapUnsupported
}

func munmapFile(_ []byte) error {
	return errMmapUnsupported
}
