// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build tools

package plasma

import (
	_ "github.com/fjl/gencodec"
)
