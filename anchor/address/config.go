// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package address

var DefaultConfig = Config{
	CacheSize: 10_000,
}

// Config is the configuration for a resolver. The cache size is the maximum
// number of program addresses kept in memory.
type Config struct {
	CacheSize uint64
}

// WithCacheSize sets the number of derived addresses the resolver keeps.
func WithCacheSize(size uint64) func(*Config) {
	return func(cfg *Config) {
		cfg.CacheSize = size
	}
}
