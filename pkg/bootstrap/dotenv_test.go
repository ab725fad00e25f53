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

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnvMissingFile(t *testing.T) {
	env, err := LoadDotEnv(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, env)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvLocalFile), []byte("APP_KEY=secret\n"), 0600))

	env, err := LoadDotEnv(dir)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"APP_KEY": "secret"}, env)
}

func TestInstantiateDotEnv(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "service")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile),
		[]byte("API_URL=\nAPI_TOKEN=\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, EnvExampleFile),
		[]byte("API_TOKEN=\n"), 0644))

	prompted := map[string]int{}
	err := InstantiateDotEnv(dir, map[string]string{"API_URL": "http://localhost:8080"},
		func(key, value string) (string, error) {
			prompted[key]++
			return "answered-" + key, nil
		})
	require.NoError(t, err)

	// substituted keys must never prompt; prompted keys answer once
	require.Equal(t, map[string]int{"API_TOKEN": 1}, prompted)

	rootEnv, err := godotenv.Read(filepath.Join(dir, EnvLocalFile))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", rootEnv["API_URL"])
	require.Equal(t, "answered-API_TOKEN", rootEnv["API_TOKEN"])

	// the answer is reused for the nested example
	subEnv, err := godotenv.Read(filepath.Join(sub, EnvLocalFile))
	require.NoError(t, err)
	require.Equal(t, "answered-API_TOKEN", subEnv["API_TOKEN"])
}
