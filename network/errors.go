package network

import "errors"

// ErrEigenFailed is returned when the Laplacian eigendecomposition does not converge.
var ErrEigenFailed = errors.New("network: eigendecomposition failed")
