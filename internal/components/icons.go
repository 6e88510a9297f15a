package components

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Icon names one of the bundled SVG icons.
type Icon string

// Icons used directly by components.
const (
	IconAlertCircle       Icon = "alert-circle"
	IconWarning           Icon = "warning"
	IconCheckmarkCircle   Icon = "checkmark-circle"
	IconHelpCircle        Icon = "help-circle"
	IconInformationCircle Icon = "information-circle"
	IconLogoGithub        Icon = "logo-github"
	IconOpen              Icon = "open"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" class="icon" viewBox="0 0 512 512" aria-hidden="true">`

// icons maps each icon to the body of its svg element.
var icons = map[Icon]string{
	IconAlertCircle:       `<circle cx="256" cy="256" r="208" fill="none" stroke="currentColor" stroke-width="32"/><path d="M256 144v128" stroke="currentColor" stroke-width="32" stroke-linecap="round"/><circle cx="256" cy="352" r="24" fill="currentColor"/>`,
	IconWarning:           `<path d="M256 64L32 448h448z" fill="none" stroke="currentColor" stroke-width="32" stroke-linejoin="round"/><path d="M256 192v112" stroke="currentColor" stroke-width="32" stroke-linecap="round"/><circle cx="256" cy="376" r="24" fill="currentColor"/>`,
	IconCheckmarkCircle:   `<circle cx="256" cy="256" r="208" fill="none" stroke="currentColor" stroke-width="32"/><path d="M352 176L224 336l-64-64" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	IconHelpCircle:        `<circle cx="256" cy="256" r="208" fill="none" stroke="currentColor" stroke-width="32"/><path d="M200 200a56 56 0 1 1 80 51c-16 8-24 20-24 37v16" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round"/><circle cx="256" cy="368" r="24" fill="currentColor"/>`,
	IconInformationCircle: `<circle cx="256" cy="256" r="208" fill="none" stroke="currentColor" stroke-width="32"/><path d="M256 232v128" stroke="currentColor" stroke-width="32" stroke-linecap="round"/><circle cx="256" cy="160" r="24" fill="currentColor"/>`,
	IconLogoGithub:        `<path fill="currentColor" d="M256 32C132 32 32 134 32 261c0 101 64 187 153 217 11 2 15-5 15-11v-39c-62 14-76-27-76-27-10-26-25-33-25-33-20-14 2-14 2-14 23 2 35 24 35 24 20 35 52 25 65 19 2-15 8-25 15-31-50-6-102-25-102-112 0-25 9-45 23-61-2-6-10-29 2-60 0 0 19-6 62 23a212 212 0 0 1 112 0c43-29 62-23 62-23 12 31 4 54 2 60 14 16 23 36 23 61 0 87-52 106-102 112 8 7 15 21 15 42v62c0 6 4 13 15 11 89-30 153-116 153-217C480 134 380 32 256 32z"/>`,
	IconOpen:              `<path d="M384 224v184a40 40 0 0 1-40 40H104a40 40 0 0 1-40-40V168a40 40 0 0 1 40-40h167" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round"/><path d="M336 64h112v112M224 288L440 72" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	"add":                 `<path d="M256 112v288M400 256H112" stroke="currentColor" stroke-width="32" stroke-linecap="round"/>`,
	"close":               `<path d="M368 368L144 144M368 144L144 368" stroke="currentColor" stroke-width="32" stroke-linecap="round"/>`,
	"menu":                `<path d="M80 160h352M80 256h352M80 352h352" stroke="currentColor" stroke-width="32" stroke-linecap="round"/>`,
	"search":              `<circle cx="221" cy="221" r="157" fill="none" stroke="currentColor" stroke-width="32"/><path d="M338 338l110 110" stroke="currentColor" stroke-width="32" stroke-linecap="round"/>`,
	"home":                `<path d="M80 212v236a16 16 0 0 0 16 16h96V328a24 24 0 0 1 24-24h80a24 24 0 0 1 24 24v136h96a16 16 0 0 0 16-16V212M480 256L256 48 32 256" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	"mail":                `<rect x="48" y="96" width="416" height="320" rx="40" fill="none" stroke="currentColor" stroke-width="32"/><path d="M112 160l144 112 144-112" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	"trash":               `<path d="M112 112l20 320c1 18 14 32 32 32h184c18 0 31-14 32-32l20-320M80 112h352M192 112V72h128v40" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	"arrow-forward":       `<path d="M268 112l144 144-144 144M392 256H100" fill="none" stroke="currentColor" stroke-width="48" stroke-linecap="round" stroke-linejoin="round"/>`,
	"download":            `<path d="M176 262l80 80 80-80M256 48v280M416 464H96" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
	"log-out":             `<path d="M304 336v40a40 40 0 0 1-40 40H104a40 40 0 0 1-40-40V136a40 40 0 0 1 40-40h152c22 0 48 18 48 40v40M368 336l80-80-80-80M176 256h256" fill="none" stroke="currentColor" stroke-width="32" stroke-linecap="round" stroke-linejoin="round"/>`,
}

// DecodeIcon matches an icon name, ignoring case.
func DecodeIcon(raw string) (Icon, error) {
	icon := Icon(cases.Fold().String(strings.TrimSpace(raw)))
	if _, ok := icons[icon]; !ok {
		return "", fmt.Errorf("unknown icon %q", raw)
	}
	return icon, nil
}

// SVG renders the icon as an inline svg element.
func (i Icon) SVG() string {
	return svgOpen + icons[i] + `</svg>`
}

// IconNames returns every known icon name in sorted order.
func IconNames() []string {
	names := make([]string, 0, len(icons))
	for icon := range icons {
		names = append(names, string(icon))
	}
	sort.Strings(names)
	return names
}

func iconDescription() string {
	return "the name of an icon, one of " + strings.Join(IconNames(), ", ")
}
