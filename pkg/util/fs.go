// Copyright 2025 Pylot Authors
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

package util

import (
	"os"
	"path/filepath"
)

// FileExists reports whether dir contains filename as a regular file.
func FileExists(dir, filename string) bool {
	info, err := os.Stat(filepath.Join(dir, filename))
	return err == nil && !info.IsDir()
}

// DirExists reports whether dir contains name as a directory.
func DirExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}

// EntryExists reports whether dir contains name, regardless of kind. A git
// checkout may carry .git as either a directory or a gitfile, so presence
// checks for it cannot assume one or the other.
func EntryExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
