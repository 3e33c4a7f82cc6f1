// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rule used during training.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent with a fixed learning rate
//   - Optimizer interface for custom update rules
//   - Apply: one-shot update of a Network from a Gradients set
//
// # Basic Usage
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	trace, _ := net.Predict(x)
//	grads := net.Backpropagate(y, trace)
//	optimizer.Step(net.Parameters(), grads.Flatten())
package optim
