// Copyright 2025 QuatNN Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/quatnn-ml/quatnn/internal/tensor"
)

// Backend defines the interface that all compute backends implement.
// Element-wise and shape primitives panic on contract misuse; the fused
// layer operations return errors so callers can recover from malformed
// inputs.
type Backend = tensor.Backend
