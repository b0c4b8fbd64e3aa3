// Package quaternion implements quaternion-valued linear algebra on real
// tensors. A quaternion tensor is an ordinary rank-2 or rank-3 real tensor
// whose last axis is a multiple of 4, interpreted as the concatenation of
// four equal-width component blocks (r, i, j, k).
//
// The package provides component views, the Hamilton product, the
// block-matrix encoding that embeds quaternion multiplication into a real
// matrix multiplication, and quaternion-aware weight initializers.
// Everything operates on raw tensors through a tensor.Backend, so the same
// code drives both the plain CPU backend and the autodiff decorator.
package quaternion
