// Copyright 2026 The tzdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import (
	"github.com/bpowers/tzdb/cmd/tzdb/cmd"
)

func main() {
	cmd.Execute()
}
