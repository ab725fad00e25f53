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

package main

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	pylot "github.com/pylot-dev/pylot"
	"github.com/pylot-dev/pylot/pkg/util"
)

var (
	theme = util.Theme

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 2)

	bannerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("4")).
				Bold(true)
)

func printBanner(module string) {
	title := bannerTitleStyle.Render("pylot " + pylot.Version)
	body := title + "\n" + util.Dimmed("development launcher")
	if module != "" {
		body += util.Dimmed(" for ") + util.Accented(module)
	}
	fmt.Println(bannerStyle.Render(body))

	if runtime.GOOS == "windows" {
		fmt.Println(util.Warning("Note: this workspace layout assumes a case-sensitive filesystem; some Unix-built projects may misbehave on Windows."))
	}
}
