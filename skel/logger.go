// Copyright 2024 The Moonburn Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skel

import (
	"github.com/PlayerLegend/moonburn-engine/util/logger"
)

// Package logger
var log = logger.New("SKEL", logger.Default)
