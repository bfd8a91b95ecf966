package extract

import (
	"regexp"
	"strings"
)

const (
	watchLinkMarker = "](https://www.youtube.com/watch?"
	thumbHost       = "https://i.ytimg.com/"
)

var (
	watchURLPattern = regexp.MustCompile(`\((https://www\.youtube\.com/watch\?v=[^)]*)\)`)
	linkTextPattern = regexp.MustCompile(`\[([^\]]+)\]\(`)
	thumbPattern    = regexp.MustCompile(`(https://i\.ytimg\.com/[^)]+)`)
)

// Videos splits markdown into blocks on blank-line boundaries and runs each
// block through a per-line classifier. URL, title, channel and thumbnail keep
// the first match within a block; views and uploaded are re-set by every
// matching line, so the last one wins.
//
// The channel rule is a deliberate heuristic: the first line that is not a
// views/upload/thumbnail line - typically the title link line itself - is
// taken as the channel. It can capture an unrelated line when the real
// channel line is missing or out of position. That behavior matches the
// source pages this was tuned against and is kept as-is.
func Videos(markdown string) []VideoCandidate {
	blocks := strings.Split(markdown, "\n\n")
	out := make([]VideoCandidate, 0, len(blocks))
	for _, block := range blocks {
		cand, ok := scanVideoBlock(block)
		if ok {
			out = append(out, cand)
		}
	}
	return out
}

type videoScan struct {
	cand       VideoCandidate
	channelSet bool
	matched    bool
}

func scanVideoBlock(block string) (VideoCandidate, bool) {
	var s videoScan
	for _, line := range strings.Split(block, "\n") {
		s.classify(line)
	}
	return s.cand, s.matched
}

func (s *videoScan) classify(line string) {
	if strings.Contains(line, watchLinkMarker) && s.cand.URL == "" {
		if m := watchURLPattern.FindStringSubmatch(line); m != nil {
			s.cand.URL = m[1]
			s.matched = true
		}
	}

	if s.cand.Title == "" {
		if m := linkTextPattern.FindStringSubmatch(line); m != nil {
			s.cand.Title = strings.TrimSpace(m[1])
			s.matched = true
		}
	}

	hasViews := strings.Contains(line, "views")
	hasAgo := strings.Contains(line, "ago")
	hasThumb := strings.Contains(line, thumbHost)

	if !hasViews && !hasAgo && !hasThumb && !s.channelSet {
		s.cand.Channel = strings.TrimSpace(line)
		s.channelSet = true
		s.matched = true
	}

	if hasViews && hasAgo {
		if parts := strings.Split(line, " "); len(parts) >= 2 {
			s.cand.Views = parts[0] + " " + parts[1]
			s.cand.Uploaded = strings.Join(parts[2:], " ")
			s.matched = true
		}
	}

	if hasThumb && s.cand.Thumbnail == "" {
		if m := thumbPattern.FindStringSubmatch(line); m != nil {
			s.cand.Thumbnail = strings.SplitN(m[1], ")", 2)[0]
			s.matched = true
		}
	}
}
