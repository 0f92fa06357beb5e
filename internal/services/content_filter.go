package services

import (
	"regexp"
)

var bannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
}

// ContentFilter screens user-visible group text before it is stored.
type ContentFilter struct {
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		bannedWordRegexps: make([]*regexp.Regexp, 0, len(bannedWords)),
		urlPattern:        regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
	}
	for _, word := range bannedWords {
		f.bannedWordRegexps = append(f.bannedWordRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// Check returns "" for acceptable text, otherwise the rejection reason.
func (f *ContentFilter) Check(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return "inappropriate_language"
		}
	}
	if f.urlPattern.MatchString(text) {
		return "url_not_allowed"
	}
	return ""
}
