// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prometheus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCPULoad(t *testing.T) {
	require.Zero(t, cpuLoad(cpuTimes{}, cpuTimes{total: 100, idle: 50}))
	require.Zero(t, cpuLoad(cpuTimes{total: 100, idle: 50}, cpuTimes{total: 100, idle: 50}))
	require.InDelta(t, 0.75, cpuLoad(cpuTimes{total: 100, idle: 50}, cpuTimes{total: 200, idle: 75}), 1e-9)
	require.InDelta(t, 0.0, cpuLoad(cpuTimes{total: 100, idle: 50}, cpuTimes{total: 200, idle: 150}), 1e-9)
}
