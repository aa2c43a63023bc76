// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "strings"

type ReleaseChannel string

const (
	ChannelProduction  ReleaseChannel = "production"
	ChannelStaging     ReleaseChannel = "staging"
	ChannelDevelopment ReleaseChannel = "development"
)

func (c ReleaseChannel) Valid() bool {
	switch c {
	case ChannelProduction, ChannelStaging, ChannelDevelopment:
		return true
	}
	return false
}

// ParseChannel maps a user supplied channel name onto the enum. An
// empty string falls back to production, matching what devices expect
// when they do not pin a channel.
func ParseChannel(s string) (ReleaseChannel, bool) {
	if s == "" {
		return ChannelProduction, true
	}
	c := ReleaseChannel(strings.ToLower(s))
	return c, c.Valid()
}

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
		return true
	}
	return false
}

// NormalizePlatforms lowercases and drops unknown platform names. An
// empty result means the caller should apply the default platform set.
func NormalizePlatforms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		p := Platform(strings.ToLower(strings.TrimSpace(s)))
		if p.Valid() {
			out = append(out, string(p))
		}
	}
	return out
}

// DefaultPlatforms is applied when neither the package metadata nor the
// publish request names any platform.
func DefaultPlatforms() []string {
	return []string{string(PlatformIOS), string(PlatformAndroid)}
}
